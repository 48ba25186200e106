// Package errors provides structured error types for profilectl.
package errors

import (
	"fmt"
)

// ErrorCode identifies specific error conditions
type ErrorCode string

const (
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"
	ErrCodePermission ErrorCode = "PERMISSION_DENIED"
	ErrCodeAPI        ErrorCode = "API_ERROR"
	ErrCodeExport     ErrorCode = "EXPORT_ERROR"
	ErrCodeDraft      ErrorCode = "DRAFT_ERROR"
	ErrCodeSession    ErrorCode = "SESSION_ERROR"
	ErrCodeConfig     ErrorCode = "CONFIG_ERROR"
)

// Error is the base error type for profilectl
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
	Details map[string]interface{}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new error with the given code and message
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Wrap creates a new error wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
		Details: make(map[string]interface{}),
	}
}

// WithDetails adds details to an error
func (e *Error) WithDetails(details map[string]interface{}) *Error {
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail adds a single detail to an error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	e.Details[key] = value
	return e
}

// ValidationError creates a validation error
func ValidationError(message string, details map[string]interface{}) *Error {
	return &Error{
		Code:    ErrCodeValidation,
		Message: message,
		Details: details,
	}
}

// NotFoundError creates a not found error
func NotFoundError(resourceType, name string) *Error {
	return &Error{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s %q not found", resourceType, name),
		Details: map[string]interface{}{
			"resource_type": resourceType,
			"name":          name,
		},
	}
}

// APIError creates an error for a failed CRM API call
func APIError(operation string, status int, body string) *Error {
	return &Error{
		Code:    ErrCodeAPI,
		Message: fmt.Sprintf("%s failed with status %d", operation, status),
		Details: map[string]interface{}{
			"operation": operation,
			"status":    status,
			"body":      body,
		},
	}
}

// ExportError creates an error for an export response that was not a
// valid document. The body text is the server's own explanation.
func ExportError(body string) *Error {
	return &Error{
		Code:    ErrCodeExport,
		Message: body,
		Details: make(map[string]interface{}),
	}
}

// DraftError creates an error for a draft store operation
func DraftError(operation string, entityID string, err error) *Error {
	return &Error{
		Code:    ErrCodeDraft,
		Message: fmt.Sprintf("draft %s failed for %s", operation, entityID),
		Cause:   err,
		Details: map[string]interface{}{
			"operation": operation,
			"entity_id": entityID,
		},
	}
}

// Is checks if the error matches the given code
func Is(err error, code ErrorCode) bool {
	if e, ok := err.(*Error); ok {
		return e.Code == code
	}
	return false
}
