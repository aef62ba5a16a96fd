package errors

import "fmt"

// ErrorCode represents a Shareline error code.
type ErrorCode string

const (
	ErrInvalidRequest  ErrorCode = "INVALID_REQUEST"   // 400
	ErrNotFound        ErrorCode = "NOT_FOUND"         // 404
	ErrSlugConflict    ErrorCode = "SLUG_CONFLICT"     // 409
	ErrPayloadTooLarge ErrorCode = "PAYLOAD_TOO_LARGE" // 413
	ErrInternal        ErrorCode = "INTERNAL"          // 500
)

// ShareError represents a structured error with code, status, and details.
type ShareError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *ShareError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *ShareError {
	return &ShareError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when a case study cannot be found.
func NewNotFound(slug string) *ShareError {
	return &ShareError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("case study not found: %s", slug),
		Details: map[string]any{"slug": slug},
	}
}

// NewSlugConflict creates a 409 error for normalized-slug collisions.
func NewSlugConflict(slug string) *ShareError {
	return &ShareError{
		Code:    ErrSlugConflict,
		Status:  409,
		Message: fmt.Sprintf("a case study with slug %q already exists", slug),
		Details: map[string]any{"slug": slug},
	}
}

// NewPayloadTooLarge creates a 413 error when an inline payload exceeds the item cap.
func NewPayloadTooLarge(max, actual int) *ShareError {
	return &ShareError{
		Code:    ErrPayloadTooLarge,
		Status:  413,
		Message: fmt.Sprintf("inline payload exceeds maximum size: %d items (max %d)", actual, max),
		Details: map[string]any{"max_items": max, "actual_items": actual},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *ShareError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &ShareError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a ShareError with the given code.
func Is(err error, code ErrorCode) bool {
	if sErr, ok := err.(*ShareError); ok {
		return sErr.Code == code
	}
	return false
}
