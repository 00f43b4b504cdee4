package source

import "fmt"

// SourceErrorType represents the type of source error.
type SourceErrorType int

const (
	// SourceFetchFailed indicates the payload could not be fetched.
	SourceFetchFailed SourceErrorType = iota
	// SourceNotFound indicates nothing exists at the location.
	SourceNotFound
	// SourceAuthFailed indicates the remote rejected the credentials.
	SourceAuthFailed
	// SourceTimeout indicates the operation timed out.
	SourceTimeout
	// SourceInvalidLocation indicates the location is malformed or unsafe.
	SourceInvalidLocation
)

// String returns the string representation of the error type.
func (t SourceErrorType) String() string {
	switch t {
	case SourceFetchFailed:
		return "FetchFailed"
	case SourceNotFound:
		return "NotFound"
	case SourceAuthFailed:
		return "AuthFailed"
	case SourceTimeout:
		return "Timeout"
	case SourceInvalidLocation:
		return "InvalidLocation"
	default:
		return "Unknown"
	}
}

// SourceError represents a source-specific error.
type SourceError struct {
	// Type is the error type classification.
	Type SourceErrorType
	// Message is the human-readable error message.
	Message string
	// Source is the source name (e.g., "http", "local").
	Source string
	// Location is the path or URL that caused the error.
	Location string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s source error [%s] for '%s': %s (caused by: %v)",
			e.Source, e.Type.String(), e.Location, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s source error [%s] for '%s': %s",
		e.Source, e.Type.String(), e.Location, e.Message)
}

// Unwrap returns the underlying cause for error wrapping.
func (e *SourceError) Unwrap() error {
	return e.Cause
}

// NewSourceError creates a new SourceError.
func NewSourceError(typ SourceErrorType, source, location, message string, cause error) *SourceError {
	return &SourceError{
		Type:     typ,
		Message:  message,
		Source:   source,
		Location: location,
		Cause:    cause,
	}
}

// NewFetchError creates a fetch failed error.
func NewFetchError(source, location string, cause error) *SourceError {
	return NewSourceError(SourceFetchFailed, source, location, "failed to fetch payload", cause)
}

// NewNotFoundError creates a not found error.
func NewNotFoundError(source, location string) *SourceError {
	return NewSourceError(SourceNotFound, source, location, "payload not found", nil)
}

// NewAuthError creates an authentication failed error.
func NewAuthError(source, location string) *SourceError {
	return NewSourceError(SourceAuthFailed, source, location, "authentication failed", nil)
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(source, location string, cause error) *SourceError {
	return NewSourceError(SourceTimeout, source, location, "operation timed out", cause)
}

// NewInvalidLocationError creates an invalid location error.
func NewInvalidLocationError(source, location string, cause error) *SourceError {
	return NewSourceError(SourceInvalidLocation, source, location, "invalid location", cause)
}
