package zohodomain

import (
	"fmt"
)

// ErrorResponse is the error envelope of the Zoho Books API. Code 0 means success.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AuthError means the OAuth provider did not return an access token. Response keeps the raw
// provider body for diagnostics.
type AuthError struct {
	StatusCode int
	Response   string
	Err        error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("zoho token refresh failed: %v", e.Err)
	}
	return fmt.Sprintf("zoho token refresh failed: %s", e.Response)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// UpstreamError means a Zoho Books API call failed or returned a malformed payload.
type UpstreamError struct {
	Op         string
	StatusCode int
	Code       int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("zoho %s failed", e.Op)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Code != 0 {
		msg += fmt.Sprintf(" code %d", e.Code)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
