package band

import (
	"errors"
	"fmt"
)

// ErrNoAccessToken is returned when an API call is attempted before the
// authorization flow has produced a token.
var ErrNoAccessToken = errors.New("no access token: run the authorization flow first")

// APIError is a business-level failure reported by the BAND API: a non-200
// status, a bad result_code inside a 200 envelope, a non-JSON body, or a
// malformed success envelope.
type APIError struct {
	// ResultCode is the upstream result code; -1 when the response carried
	// none (empty or malformed error body).
	ResultCode int

	// Message is the upstream result_data.message, or a generic description
	// of the failure.
	Message string

	// ErrorDetail is result_data.detail.error.
	ErrorDetail string

	// Description is result_data.detail.description.
	Description string
}

// Error composes the upstream diagnostics into one string. The result code
// is always present, even when the error body was empty or malformed.
func (e *APIError) Error() string {
	if e.ErrorDetail == "" && e.Description == "" {
		return fmt.Sprintf("%d, %s", e.ResultCode, e.Message)
	}
	msg := fmt.Sprintf("%d, %s(%s)", e.ResultCode, e.Message, e.ErrorDetail)
	if e.Description != "" {
		msg += "\n" + e.Description
	}
	return msg
}

// PermissionError indicates a mutating call was rejected locally because the
// band does not grant the required capability. No request was issued.
type PermissionError struct {
	BandKey    string
	Capability string
}

// Error implements the error interface.
func (e *PermissionError) Error() string {
	return fmt.Sprintf("band %s does not grant %q", e.BandKey, e.Capability)
}

// FieldError indicates an indexed lookup of a field name a domain object
// does not declare.
type FieldError struct {
	Type string
	Name string
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("unknown field %q on %s", e.Name, e.Type)
}
