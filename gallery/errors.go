package gallery

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a blob does not exist in the image directory.
var ErrNotFound = errors.New("gallery: not found")

// ValidationError reports a request that is missing a required field.
// Message is safe to show to callers.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StorageError wraps an I/O or decoding failure in one of the stores.
type StorageError struct {
	Op       string
	Filename string
	Err      error
}

func (e *StorageError) Error() string {
	if e.Filename == "" {
		return fmt.Sprintf("gallery: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("gallery: %s %s: %v", e.Op, e.Filename, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is (or wraps) ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
