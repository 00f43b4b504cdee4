package app

import "fmt"

// AppErrorType represents the type of application error.
type AppErrorType int

const (
	// StateLoadFailed indicates the state file could not be opened or decoded.
	StateLoadFailed AppErrorType = iota
	// StateSaveFailed indicates the state file could not be written.
	StateSaveFailed
	// StateLocked indicates another process holds the state lock.
	StateLocked
	// FetchFailed indicates a payload could not be fetched.
	FetchFailed
	// DecodeFailed indicates a fetched payload could not be decoded.
	DecodeFailed
	// NotFound indicates a template, dashboard or stack does not exist.
	NotFound
	// ValidationFailed indicates validation failed.
	ValidationFailed
)

// String returns the string representation of the error type.
func (t AppErrorType) String() string {
	switch t {
	case StateLoadFailed:
		return "StateLoadFailed"
	case StateSaveFailed:
		return "StateSaveFailed"
	case StateLocked:
		return "StateLocked"
	case FetchFailed:
		return "FetchFailed"
	case DecodeFailed:
		return "DecodeFailed"
	case NotFound:
		return "NotFound"
	case ValidationFailed:
		return "ValidationFailed"
	default:
		return "Unknown"
	}
}

// AppError represents an application-layer error.
type AppError struct {
	// Type is the error type.
	Type AppErrorType
	// Message is the error message.
	Message string
	// Cause is the underlying error.
	Cause error
}

// Error returns the error message.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError.
func NewAppError(errType AppErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// NewStateLoadError creates a state load error.
func NewStateLoadError(message string, cause error) *AppError {
	return NewAppError(StateLoadFailed, message, cause)
}

// NewStateSaveError creates a state save error.
func NewStateSaveError(message string, cause error) *AppError {
	return NewAppError(StateSaveFailed, message, cause)
}

// NewFetchError creates a fetch error.
func NewFetchError(message string, cause error) *AppError {
	return NewAppError(FetchFailed, message, cause)
}

// NewDecodeError creates a decode error.
func NewDecodeError(message string, cause error) *AppError {
	return NewAppError(DecodeFailed, message, cause)
}

// NewNotFoundError creates a not found error.
func NewNotFoundError(message string) *AppError {
	return NewAppError(NotFound, message, nil)
}

// NewValidationError creates a validation error.
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ValidationFailed, message, cause)
}
