// Package errors provides structured error types for the spanner prover.
//
// Every error that leaves a package boundary carries a machine-readable
// [Code] so that the CLI and the HTTP server can map failures to exit
// statuses and response codes without matching on message text.
//
// # Error Codes
//
//   - INVALID_*: malformed input such as claim names, paths or notation
//   - *_NOT_FOUND: unknown claims, runs or files
//   - CANDIDATES_EXHAUSTED, DILATION_VIOLATED, LEAF_COUNT_MISMATCH: a proof
//     or sweep did not establish its statement
//   - NETWORK_ERROR, INTERNAL_ERROR: infrastructure failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeClaimNotFound, "unknown claim %q", name)
//	if errors.Is(err, errors.ErrCodeClaimNotFound) {
//	    // ...
//	}
//
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "redis %s", addr)
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
	ErrCodeInvalidClaim    Code = "INVALID_CLAIM"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeInvalidNotation Code = "INVALID_NOTATION"

	// Resource not found errors
	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeClaimNotFound Code = "CLAIM_NOT_FOUND"
	ErrCodeRunNotFound   Code = "RUN_NOT_FOUND"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"

	// Verification failures
	ErrCodeCandidatesExhausted Code = "CANDIDATES_EXHAUSTED"
	ErrCodeDilationViolated    Code = "DILATION_VIOLATED"
	ErrCodeLeafCountMismatch   Code = "LEAF_COUNT_MISMATCH"

	// Infrastructure errors
	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeTimeout     Code = "TIMEOUT"
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
		return e.Message
	}
	return err.Error()
}

// IsVerificationFailure reports whether err means a statement was refuted
// or could not be established, as opposed to bad input or broken
// infrastructure.
func IsVerificationFailure(err error) bool {
	switch GetCode(err) {
	case ErrCodeCandidatesExhausted, ErrCodeDilationViolated, ErrCodeLeafCountMismatch:
		return true
	}
	return false
}
