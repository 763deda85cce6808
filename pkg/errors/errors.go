// Package errors provides structured error types for boxroute.
//
// Every error that crosses a package boundary towards the CLI or the HTTP
// service carries a machine-readable [Code], so callers can tell a bad
// diagram from an unroutable one or from an internal fault:
//
//   - INVALID_*, PARSE_ERROR: the input could not be read or understood
//   - UNRESOLVED_BLOCK, DUPLICATE_BLOCK: the diagram graph is inconsistent
//   - UNROUTABLE: no conflict-free connection layout exists
//   - INTERNAL_ERROR: an invariant of the layout engine was violated
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "unknown policy %q", name)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // report to the user
//	}
//
//	err = errors.Wrap(errors.ErrCodeParse, cause, "line %d", n)
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
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeParse         Code = "PARSE_ERROR"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"

	// Graph errors
	ErrCodeUnresolvedBlock Code = "UNRESOLVED_BLOCK"
	ErrCodeDuplicateBlock  Code = "DUPLICATE_BLOCK"

	// Layout errors
	ErrCodeUnroutable Code = "UNROUTABLE"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
		if e.Cause != nil {
			return e.Message + ": " + UserMessage(e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps an error code to the status the layout service answers with.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidConfig, ErrCodeParse,
		ErrCodeUnresolvedBlock, ErrCodeDuplicateBlock:
		return 400
	case ErrCodeUnroutable:
		return 422
	case ErrCodeUnsupported:
		return 501
	default:
		return 500
	}
}
