package errors

import (
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeInvalidShape     ErrorType = "invalid_shape"
	ErrorTypeEmptyInput       ErrorType = "empty_input"
	ErrorTypeUnknownMethod    ErrorType = "unknown_method"
	ErrorTypeInvalidParameter ErrorType = "invalid_parameter"
	ErrorTypeIO               ErrorType = "io"
	ErrorTypeInternal         ErrorType = "internal"
)

// Sentinels for errors.Is matching. Only the Type is compared.
var (
	ErrInvalidShape     = &AppError{Type: ErrorTypeInvalidShape, Message: "invalid shape"}
	ErrEmptyInput       = &AppError{Type: ErrorTypeEmptyInput, Message: "empty input"}
	ErrUnknownMethod    = &AppError{Type: ErrorTypeUnknownMethod, Message: "unknown method"}
	ErrInvalidParameter = &AppError{Type: ErrorTypeInvalidParameter, Message: "invalid parameter"}
)

// AppError represents a structured application error
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	Cause   error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AppError of the same type.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewInvalidShapeError creates an error for an array whose rank is not allowed
func NewInvalidShapeError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidShape,
		Message: message,
		Cause:   cause,
	}
}

// NewEmptyInputError creates an error for an array without elements
func NewEmptyInputError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeEmptyInput,
		Message: message,
		Cause:   cause,
	}
}

// NewUnknownMethodError creates an error for an unrecognized method name
func NewUnknownMethodError(method string) *AppError {
	return &AppError{
		Type:    ErrorTypeUnknownMethod,
		Message: fmt.Sprintf("unknown method %q", method),
		Details: "expected one of default, ror, uniform, nri_uniform, var",
	}
}

// NewInvalidParameterError creates an error for an out-of-range parameter
func NewInvalidParameterError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidParameter,
		Message: message,
		Cause:   cause,
	}
}

// NewIOError creates an error for failed reads and writes
func NewIOError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeIO,
		Message: message,
		Cause:   cause,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Cause:   cause,
	}
}

// IsType checks if the error, or any error it wraps, is of a specific type
func IsType(err error, errorType ErrorType) bool {
	for err != nil {
		if appErr, ok := err.(*AppError); ok && appErr.Type == errorType {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// GetType extracts the error type, falling back to internal
func GetType(err error) ErrorType {
	for err != nil {
		if appErr, ok := err.(*AppError); ok {
			return appErr.Type
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return ErrorTypeInternal
}
