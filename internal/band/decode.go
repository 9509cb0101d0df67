package band

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ResultCodeOK is the only result_code the BAND API uses for success.
const ResultCodeOK = 1

// Envelope is the top-level wrapper every API response uses regardless of
// resource type. ResultData stays raw so callers can decode it into the
// shape their endpoint expects.
type Envelope struct {
	ResultCode int             `json:"result_code"`
	ResultData json.RawMessage `json:"result_data"`
}

// errorData is the result_data shape of a failure response.
type errorData struct {
	Message string `json:"message"`
	Detail  struct {
		Error       string `json:"error"`
		Description string `json:"description"`
	} `json:"detail"`
}

// ParseResponse validates status and content type and decodes the envelope.
//
// A non-200 status always produces an *APIError built from the error body on
// a best-effort basis: a body that is missing, non-JSON, or malformed
// degrades to defaults (result_code -1, empty message and detail) rather
// than masking the original failure with a decode error.
//
// A 200 response with JSON content is returned as-is; the envelope's own
// result_code is NOT checked here, because some 200 responses carry a
// business failure that the caller still needs to inspect.
func ParseResponse(resp *http.Response) (*Envelope, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	isJSON := strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json")

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(isJSON, body)
	}

	if !isJSON {
		return nil, &APIError{ResultCode: -1, Message: "invalid content type"}
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &APIError{ResultCode: -1, Message: "malformed response envelope"}
	}
	return &env, nil
}

// statusError builds the APIError for a non-200 response.
func statusError(isJSON bool, body []byte) *APIError {
	apiErr := &APIError{ResultCode: -1}

	if !isJSON {
		return apiErr
	}

	// Best effort only: any decode failure falls through to the defaults.
	var raw struct {
		ResultCode *int            `json:"result_code"`
		ResultData json.RawMessage `json:"result_data"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return apiErr
	}
	if raw.ResultCode != nil {
		apiErr.ResultCode = *raw.ResultCode
	}

	var ed errorData
	if len(raw.ResultData) > 0 {
		_ = json.Unmarshal(raw.ResultData, &ed)
	}
	apiErr.Message = ed.Message
	apiErr.ErrorDetail = ed.Detail.Error
	apiErr.Description = ed.Detail.Description
	return apiErr
}

// envelopeError builds the APIError for a 200 envelope whose result_code is
// not ResultCodeOK.
func envelopeError(env *Envelope) *APIError {
	apiErr := &APIError{ResultCode: env.ResultCode}

	var ed errorData
	if len(env.ResultData) > 0 {
		_ = json.Unmarshal(env.ResultData, &ed)
	}
	apiErr.Message = ed.Message
	apiErr.ErrorDetail = ed.Detail.Error
	apiErr.Description = ed.Detail.Description
	if apiErr.Message == "" {
		apiErr.Message = "the request failed"
	}
	return apiErr
}
