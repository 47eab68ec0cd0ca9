// Package errors provides standardized error handling for the canvas HTTP API.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeCanvasNotFound   ErrorCode = "CANVAS_NOT_FOUND"
	ErrCodeInvalidRequest   ErrorCode = "INVALID_REQUEST"
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
)

// CanvasNotFoundMessage is the fixed message for unknown canvas ids.
const CanvasNotFoundMessage = "Canvas not found"

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// ==========================
// 2. Error Constructors
// ==========================

// NewCanvasNotFoundError creates a non-retryable lookup error.
func NewCanvasNotFoundError(canvasID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCanvasNotFound,
		Message:   CanvasNotFoundMessage,
		Details:   fmt.Sprintf("canvasId: %s", canvasID),
		Retryable: false,
		Metadata:  map[string]interface{}{"canvasId": canvasID},
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestError reports a body that could not be decoded.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Invalid request body",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationFailedError reports a decoded body that violates its schema.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreUnavailableError wraps a failure of the canvas store backend.
func NewStoreUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreUnavailable,
		Message:   "Canvas store unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewInternalError wraps any unexpected failure.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 3. Classification
// ==========================

// AsStandardError unwraps err to a *StandardError, wrapping unknown errors as internal.
func AsStandardError(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// IsNotFound reports whether err is a canvas-not-found error.
func IsNotFound(err error) bool {
	var stdErr *StandardError
	return stderrors.As(err, &stdErr) && stdErr.Code == ErrCodeCanvasNotFound
}

// GetHTTPStatus maps an error code to the transport status used for it.
func GetHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeCanvasNotFound:
		return http.StatusNotFound
	case ErrCodeInvalidRequest, ErrCodeValidationFailed:
		return http.StatusBadRequest
	case ErrCodeStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return code == ErrCodeStoreUnavailable
}

// GetErrorCategory groups codes for logs and metrics labels.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeCanvasNotFound:
		return "NOT_FOUND"
	case ErrCodeInvalidRequest, ErrCodeValidationFailed:
		return "CLIENT"
	case ErrCodeStoreUnavailable:
		return "INFRASTRUCTURE"
	default:
		return "INTERNAL"
	}
}
