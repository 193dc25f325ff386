// Package errors provides structured error types for hierarchy and dispatch
// failures.
//
// Every failure the library reports is a caller error. Domain packages declare
// sentinel errors for [errors.Is] and return them wrapped in an [*Error] that
// carries a machine-readable [Code], so callers can match either way:
//
//	err := h.Derive("shape", "square")
//	errors.Is(err, hierarchy.ErrCircularRelationship) // true
//	errs.Is(err, errs.ErrCodeCircularRelationship)    // true
//
// # Error Codes
//
// Codes follow the naming convention:
//   - INVALID_*: Input validation failures
//   - *_HIERARCHY, CIRCULAR_*: Hierarchy edge insertion failures
//   - *_CONFLICT, NO_METHOD, UNKNOWN_*: Multimethod table and dispatch failures
//   - INTERNAL_*: Unexpected internal errors
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
	ErrCodeInvalidNode   Code = "INVALID_NODE"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Hierarchy errors
	ErrCodeParentNotInHierarchy     Code = "PARENT_NOT_IN_HIERARCHY"
	ErrCodeParentAlreadyInHierarchy Code = "PARENT_ALREADY_IN_HIERARCHY"
	ErrCodeChildAlreadyInHierarchy  Code = "CHILD_ALREADY_IN_HIERARCHY"
	ErrCodeCircularRelationship     Code = "CIRCULAR_RELATIONSHIP"

	// Dispatch errors
	ErrCodeArgumentConflict     Code = "ARGUMENT_CONFLICT"
	ErrCodePreferenceConflict   Code = "PREFERENCE_CONFLICT"
	ErrCodeNoMethod             Code = "NO_METHOD"
	ErrCodeUnknownDispatchValue Code = "UNKNOWN_DISPATCH_VALUE"

	// Resource errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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

// Coder is implemented by error types that carry their own code without
// being an [*Error], such as dispatch conflict errors.
type Coder interface {
	Code() Code
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error or a [Coder] with a
// matching code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c Coder
	if errors.As(err, &c) {
		return c.Code()
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
