// Package errors provides structured error types for amplistack.
//
// Errors carry a machine-readable [Code] so the CLI, the AI proxy and the
// ingestion client can react to a failure category without parsing messages.
//
// # Error Codes
//
// Codes follow a small naming convention:
//   - INVALID_*: input validation failures
//   - *_NOT_FOUND / UNKNOWN_*: references to missing resources
//   - NETWORK_ERROR / UPSTREAM_ERROR: remote failures
//   - INTERNAL_ERROR: unexpected failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidLayer, "unknown layer %q", layer)
//	if errors.Is(err, errors.ErrCodeInvalidLayer) {
//	    // drop the entry
//	}
//
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "post transcript to %s", url)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidLayer   Code = "INVALID_LAYER"
	ErrCodeInvalidPayload Code = "INVALID_PAYLOAD"
	ErrCodeInvalidRules   Code = "INVALID_RULES"
	ErrCodeInvalidState   Code = "INVALID_STATE"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"

	// Reference errors
	ErrCodeNotFound    Code = "NOT_FOUND"
	ErrCodeUnknownNode Code = "UNKNOWN_NODE"
	ErrCodeIDConflict  Code = "ID_CONFLICT"

	// Remote errors
	ErrCodeNetwork  Code = "NETWORK_ERROR"
	ErrCodeUpstream Code = "UPSTREAM_ERROR"
	ErrCodeTimeout  Code = "TIMEOUT"

	// Configuration and internal errors
	ErrCodeNotConfigured Code = "NOT_CONFIGURED"
	ErrCodeInternal      Code = "INTERNAL_ERROR"
	ErrCodeUnsupported   Code = "UNSUPPORTED"
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

// HTTPStatus maps an error to the status code the AI proxy answers with.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidPayload, ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeUpstream, ErrCodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// UpstreamError reports a non-success answer from a remote service and
// keeps the status code so it can be passed through.
type UpstreamError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Message)
}

// Code returns the error code for this error type.
func (e *UpstreamError) Code() Code {
	return ErrCodeUpstream
}

// StatusOf returns the upstream status carried by err when it lies in the
// 400–599 range, or fallback otherwise.
func StatusOf(err error, fallback int) int {
	var ue *UpstreamError
	if errors.As(err, &ue) && ue.StatusCode >= 400 && ue.StatusCode < 600 {
		return ue.StatusCode
	}
	return fallback
}
