// Package transform holds the reversible string transforms applied to
// template documents: content escaping and document name encoding.
package transform

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// ErrMalformedEscape is returned when escaped content cannot be decoded.
var ErrMalformedEscape = errors.New("malformed escape sequence")

const upperHex = "0123456789ABCDEF"

// unreserved reports whether b passes through EncodeContent untouched.
// This is the same alphabet that older template documents were written with,
// so their content decodes unchanged.
func unreserved(b byte) bool {
	switch {
	case 'A' <= b && b <= 'Z', 'a' <= b && b <= 'z', '0' <= b && b <= '9':
		return true
	}
	switch b {
	case '@', '*', '_', '+', '-', '.', '/':
		return true
	}
	return false
}

// EncodeContent escapes raw file bytes into a printable ASCII string that can
// be embedded in a JSON document. Every byte outside the unreserved alphabet
// becomes %XX.
func EncodeContent(raw []byte) string {
	n := 0
	for _, b := range raw {
		if !unreserved(b) {
			n++
		}
	}
	if n == 0 {
		return string(raw)
	}

	var sb strings.Builder
	sb.Grow(len(raw) + 2*n)
	for _, b := range raw {
		if unreserved(b) {
			sb.WriteByte(b)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(upperHex[b>>4])
		sb.WriteByte(upperHex[b&0x0F])
	}
	return sb.String()
}

// DecodeContent reverses EncodeContent.
//
// It also accepts the %uXXXX form used for characters above U+00FF by older
// documents. Those code units are written as UTF-8, with surrogate pairs
// combined; a lone surrogate decodes to U+FFFD.
func DecodeContent(s string) ([]byte, error) {
	if strings.IndexByte(s, '%') < 0 {
		return []byte(s), nil
	}

	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c != '%' {
			out = append(out, c)
			i++
			continue
		}

		if i+1 < len(s) && s[i+1] == 'u' {
			unit, ok := hexValue(s, i+2, 4)
			if !ok {
				return nil, fmt.Errorf("%w at offset %d", ErrMalformedEscape, i)
			}
			i += 6
			r := rune(unit)
			if utf16.IsSurrogate(r) {
				if low, ok := lowSurrogateAt(s, i); ok {
					r = utf16.DecodeRune(r, low)
					i += 6
				} else {
					r = utf8.RuneError
				}
			}
			out = utf8.AppendRune(out, r)
			continue
		}

		v, ok := hexValue(s, i+1, 2)
		if !ok {
			return nil, fmt.Errorf("%w at offset %d", ErrMalformedEscape, i)
		}
		out = append(out, byte(v))
		i += 3
	}
	return out, nil
}

// lowSurrogateAt reports whether a %uXXXX low surrogate starts at offset i.
func lowSurrogateAt(s string, i int) (rune, bool) {
	if i+1 >= len(s) || s[i] != '%' || s[i+1] != 'u' {
		return 0, false
	}
	v, ok := hexValue(s, i+2, 4)
	if !ok || v < 0xDC00 || v > 0xDFFF {
		return 0, false
	}
	return rune(v), true
}

func hexValue(s string, start, width int) (uint32, bool) {
	if start+width > len(s) {
		return 0, false
	}
	var v uint32
	for _, c := range []byte(s[start : start+width]) {
		var d byte
		switch {
		case '0' <= c && c <= '9':
			d = c - '0'
		case 'a' <= c && c <= 'f':
			d = c - 'a' + 10
		case 'A' <= c && c <= 'F':
			d = c - 'A' + 10
		default:
			return 0, false
		}
		v = v<<4 | uint32(d)
	}
	return v, true
}

// UnescapeLegacy decodes content written by older template documents, which
// escaped text rather than bytes: %XX is the character U+00XX and %uXXXX a
// UTF-16 code unit. The result is UTF-8. Sequences that are not valid
// escapes are kept literally.
func UnescapeLegacy(s string) string {
	if strings.IndexByte(s, '%') < 0 {
		return s
	}

	units := make([]uint16, 0, len(s))
	for i := 0; i < len(s); {
		if s[i] == '%' {
			if i+1 < len(s) && s[i+1] == 'u' {
				if v, ok := hexValue(s, i+2, 4); ok {
					units = append(units, uint16(v))
					i += 6
					continue
				}
			} else if v, ok := hexValue(s, i+1, 2); ok {
				units = append(units, uint16(v))
				i += 3
				continue
			}
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		units = utf16.AppendRune(units, r)
		i += size
	}
	return string(utf16.Decode(units))
}
