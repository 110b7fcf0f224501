package client

import "errors"

// APIError is an application-level failure reported by the super-admin API:
// a non-2xx status or an envelope with success=false. Message carries the
// server-provided text and must be surfaced to the operator verbatim.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "request failed"
}

// AsAPIError unwraps err into an APIError when the failure came from the
// server rather than the transport.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
