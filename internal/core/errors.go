package core

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingFile is returned when an import request carries no file.
	ErrMissingFile = errors.New("no file provided")

	// ErrNotFound is returned when an update or delete matches no user.
	ErrNotFound = errors.New("user not found")

	// ErrInvalidID is returned when a user id is not a positive integer.
	ErrInvalidID = errors.New("invalid user id")
)

// ValidationError reports a missing or malformed client-supplied field.
type ValidationError struct {
	Field   string // Field name, empty when the message covers several fields
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// DecodeError reports an upload that could not be read as a spreadsheet.
type DecodeError struct {
	FileName string
	Err      error
}

func (e *DecodeError) Error() string {
	if e.FileName != "" {
		return fmt.Sprintf("decode spreadsheet %q: %v", e.FileName, e.Err)
	}
	return fmt.Sprintf("decode spreadsheet: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// StoreError wraps a failure of the underlying data store. For imports it
// means the whole transaction was rolled back.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// IsClientError reports whether err was caused by the request itself rather
// than by the store or the server.
func IsClientError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) ||
		errors.Is(err, ErrMissingFile) ||
		errors.Is(err, ErrInvalidID)
}
