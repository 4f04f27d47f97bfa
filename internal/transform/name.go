package transform

import (
	"strings"
	"unicode"
)

// DocumentSuffix marks a file as a template document.
const DocumentSuffix = ".template.json"

// rotation is the fixed shift applied to a-z by EncodeName.
const rotation = 13

// EncodeName derives the document file name for a template title.
//
// The title is lower-cased, each letter a-z is rotated by 13, all whitespace
// is removed and DocumentSuffix is appended. Titles that differ only in case
// or whitespace therefore share one identifier. An empty title has no
// identifier and must not be persisted.
func EncodeName(title string) (string, bool) {
	if title == "" {
		return "", false
	}

	var sb strings.Builder
	sb.Grow(len(title) + len(DocumentSuffix))
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsSpace(r):
			continue
		case 'a' <= r && r <= 'z':
			sb.WriteRune('a' + (r-'a'+rotation)%26)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteString(DocumentSuffix)
	return sb.String(), true
}

// IsDocumentName reports whether a file name carries the document suffix.
// The match is case-sensitive.
func IsDocumentName(name string) bool {
	return strings.HasSuffix(name, DocumentSuffix)
}
