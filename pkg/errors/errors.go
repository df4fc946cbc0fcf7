// Package errors provides structured error types for cfgexplorer.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the controller, CLI and HTTP host
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The explorer core only ever reports three failure classes:
//   - INITIALIZATION: a drawing surface or context panel handle is missing
//   - DOCUMENT_PARSE: malformed JSON or a document that fails validation
//   - EMPTY_DOCUMENT: a well-formed document with zero functions
//
// The remaining codes are used by the hosts (CLI, HTTP server, config).
//
// Navigation commands with stale or out-of-range arguments are not errors;
// they are silent no-ops and never produce a value from this package.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeEmptyDocument, "document %q has no functions", name)
//	if errors.Is(err, errors.ErrCodeEmptyDocument) {
//	    // Handle empty document
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeDocumentParse, jsonErr, "decode document")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Explorer core errors
	ErrCodeInitialization Code = "INITIALIZATION"
	ErrCodeDocumentParse  Code = "DOCUMENT_PARSE"
	ErrCodeEmptyDocument  Code = "EMPTY_DOCUMENT"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Resource not found errors
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"
	ErrCodeSessionNotFound Code = "SESSION_NOT_FOUND"

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
// For *Error types, returns the message (plus cause) without the code prefix.
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

// IsDocumentError reports whether err rejects a document, either because it
// could not be parsed or because it contains no functions.
func IsDocumentError(err error) bool {
	switch GetCode(err) {
	case ErrCodeDocumentParse, ErrCodeEmptyDocument:
		return true
	}
	return false
}
