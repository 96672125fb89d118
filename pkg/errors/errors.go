// Package errors provides structured error types for dashgrid.
//
// The layout engine distinguishes two kinds of problems. Structural errors
// (malformed input, out-of-bounds coordinates, unknown presets) are returned
// as *Error values carrying a machine-readable [Code]; callers fail fast on
// the first one. Heuristic corrections are not errors at all: they are logged
// and recorded on the resulting layout.
//
// # Error Codes
//
//   - INVALID_*: input validation failures
//   - DUPLICATE_ID: two widgets share an id
//   - NOT_FOUND: resource lookups (cache entries, presets by HTTP path)
//   - INTERNAL_ERROR: unexpected failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidPosition, "widget %q: x=%d out of range", id, x)
//	if errors.Is(err, errors.ErrCodeInvalidPosition) {
//	    // Reject the request
//	}
//
// Errors about a single widget carry its id, which the HTTP API reports
// alongside the code:
//
//	return errors.New(errors.ErrCodeDuplicateID, "duplicate id %q", id).For(id)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidPosition Code = "INVALID_POSITION"
	ErrCodeInvalidPreset   Code = "INVALID_PRESET"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeDuplicateID     Code = "DUPLICATE_ID"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Widget  string // Id of the offending widget, if one is known
	Cause   error  // Underlying error (optional)
}

// For attributes the error to the widget with the given id and returns e.
func (e *Error) For(id string) *Error {
	e.Widget = id
	return e
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
// It unwraps the error chain looking for the outermost *Error.
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

// WidgetID returns the id of the widget err is attributed to, or "".
func WidgetID(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Widget
	}
	return ""
}

// IsStructural reports whether err is a structural input error, i.e. one the
// caller caused and can fix by changing the request.
func IsStructural(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidPosition, ErrCodeInvalidPreset,
		ErrCodeInvalidConfig, ErrCodeInvalidFormat, ErrCodeDuplicateID:
		return true
	}
	return false
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
