package template

import (
	"errors"
	"fmt"
)

var (
	// ErrDirectoryUnavailable indicates that the document folder cannot be listed.
	ErrDirectoryUnavailable = errors.New("template directory unavailable")

	// ErrDocumentCorrupted indicates that a document failed to parse or validate.
	ErrDocumentCorrupted = errors.New("template document corrupted")

	// ErrReadFailure indicates that a file could not be read while encoding.
	ErrReadFailure = errors.New("read failure")

	// ErrWriteFailure indicates that a node could not be written while materializing.
	ErrWriteFailure = errors.New("write failure")

	// ErrEmptyTitle indicates that a template title is empty after trimming.
	ErrEmptyTitle = errors.New("template title must not be empty")

	// ErrNameConflict indicates that a title encodes to an identifier already in use.
	ErrNameConflict = errors.New("a template with a similar name already exists")

	// ErrInvalidName indicates a node name that cannot be used as a path element.
	ErrInvalidName = errors.New("invalid node name")
)

// CorruptedError describes a catalog entry that was excluded from a scan.
type CorruptedError struct {
	Name string
	Err  error
}

func (e *CorruptedError) Error() string {
	return fmt.Sprintf("template file %s may be corrupted: %v", e.Name, e.Err)
}

func (e *CorruptedError) Unwrap() []error {
	return []error{ErrDocumentCorrupted, e.Err}
}
