package oauth

import "fmt"

// ConfigurationError indicates an invalid authorization request configuration.
// It is raised locally, before any network request is issued.
type ConfigurationError struct {
	// Field is the offending configuration field (e.g. "response_type").
	Field string

	// Value is the rejected value.
	Value string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

// AuthorizationError indicates a failure of the authorization flow itself:
// a non-200 response from the token endpoint, an aborted redirect wait, or a
// malformed token response.
type AuthorizationError struct {
	// Status is the HTTP status from the token endpoint, or 0 when the
	// failure happened before a response was received.
	Status int

	// Message describes the failure.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *AuthorizationError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain inspection.
func (e *AuthorizationError) Unwrap() error {
	return e.Err
}
