// Package errors provides structured error types for symbolator.
//
// Every failure that crosses a package boundary carries a machine-readable
// [Code] so the CLI and the HTTP service can decide how to report it:
//
//   - INVALID_*: input validation failures (paths, formats, config)
//   - PARSE_ERROR: HDL source that could not be read as an entity/module
//   - UNSUPPORTED_TYPE_EXPRESSION: a port or generic type the flattener cannot render
//   - RENDER_ERROR: output backend failures (rsvg-convert, PNG encoding)
//   - INTERNAL_ERROR: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidPath, "invalid input source: %s", path)
//	if errors.Is(err, errors.ErrCodeInvalidPath) {
//	    // exit with a diagnostic
//	}
//
//	err = errors.Wrap(errors.ErrCodeRender, origErr, "convert %s", format)
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
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidName   Code = "INVALID_NAME"

	// Source errors
	ErrCodeParse                     Code = "PARSE_ERROR"
	ErrCodeUnsupportedTypeExpression Code = "UNSUPPORTED_TYPE_EXPRESSION"
	ErrCodeEntityNotFound            Code = "ENTITY_NOT_FOUND"

	// Output errors
	ErrCodeRender Code = "RENDER_ERROR"

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
// Errors exposing a Code() method (such as typed errors in other packages)
// match as well.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no coded error is found in the chain.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return ""
}

// coder is implemented by typed errors that carry their own code.
type coder interface {
	error
	Code() Code
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
