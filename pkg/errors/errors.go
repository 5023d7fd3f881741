// Package errors provides structured error types for rtexport.
//
// Errors carry a machine-readable [Code] so that the CLI and the HTTP
// server can report failures consistently, while the original cause stays
// reachable through errors.Is and errors.As.
//
// # Error Codes
//
//   - INVALID_*: configuration or scene input rejected before exporting
//   - HOST_QUERY_FAILED: the host could not answer a query (bad frame, broken
//     parent chain); fatal for the current export
//   - OUTPUT_FAILED: an output file could not be created or written
//   - RENDERER_FAILED: the external renderer could not be started
//   - UNKNOWN_COMMAND: a configuration command the receiver does not handle
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidLayer, "layer %d out of range", n)
//	if errors.Is(err, errors.ErrCodeInvalidLayer) {
//	    // ignore and keep the previous configuration
//	}
//
//	err := errors.Wrap(errors.ErrCodeOutput, origErr, "create %s", path)
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
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidScene  Code = "INVALID_SCENE"
	ErrCodeInvalidLayer  Code = "INVALID_LAYER"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Export errors
	ErrCodeHostQuery Code = "HOST_QUERY_FAILED"
	ErrCodeOutput    Code = "OUTPUT_FAILED"
	ErrCodeRenderer  Code = "RENDERER_FAILED"

	// Configuration commands
	ErrCodeUnknownCommand Code = "UNKNOWN_COMMAND"

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

// HostQuery wraps a failure reported by the host. The host's own error is
// kept as the cause so callers can still match its sentinels.
func HostQuery(cause error, format string, args ...any) *Error {
	return Wrap(ErrCodeHostQuery, cause, format, args...)
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
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
