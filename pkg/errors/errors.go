// Package errors provides structured error types for pigeon.
//
// Every failure the pipeline can surface carries a machine-readable [Code]
// so the CLI can report it verbatim and tests can match on the category
// rather than on message text.
//
// # Error Codes
//
//   - DATA_FORMAT: the graph JSON or an input image could not be understood
//   - RESOURCE_NOT_FOUND: an image, font, or graph file does not exist
//   - UNSUPPORTED_ALGORITHM: the requested layout algorithm is unknown
//   - DEGENERATE_LAYOUT: every point collapsed onto one value on an axis
//   - INDEX_OUT_OF_RANGE: a pixel lookup fell outside the image buffer
//   - INVALID_INPUT: option validation failures
//   - INTERNAL_ERROR: unexpected failures in a third-party backend
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDataFormat, "link %d: missing source", i)
//	if errors.Is(err, errors.ErrCodeDataFormat) {
//	    // Handle malformed input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeResourceNotFound, origErr, "open %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors
	ErrCodeDataFormat   Code = "DATA_FORMAT"
	ErrCodeInvalidInput Code = "INVALID_INPUT"

	// Resource errors
	ErrCodeResourceNotFound Code = "RESOURCE_NOT_FOUND"

	// Layout errors
	ErrCodeUnsupportedAlgorithm Code = "UNSUPPORTED_ALGORITHM"
	ErrCodeDegenerateLayout     Code = "DEGENERATE_LAYOUT"

	// Classification errors
	ErrCodeIndexOutOfRange Code = "INDEX_OUT_OF_RANGE"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// NotFound wraps a file-open failure as RESOURCE_NOT_FOUND naming the path.
func NotFound(path string, cause error) *Error {
	return Wrap(ErrCodeResourceNotFound, cause, "%s", path)
}
