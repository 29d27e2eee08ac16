package supabasedomain

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// APIError is a non-2xx answer of the auth backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

type errorBody struct {
	Message          string `json:"message"`
	Msg              string `json:"msg"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// NewAPIError picks the most specific message the backend returned, falling back to the
// raw body and then to the HTTP status.
func NewAPIError(statusCode int, body []byte) *APIError {
	var parsed errorBody
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(body, &parsed); err == nil {
		for _, msg := range []string{parsed.Message, parsed.Msg, parsed.ErrorDescription, parsed.Error} {
			if msg != "" {
				return &APIError{StatusCode: statusCode, Message: msg}
			}
		}
	}

	if len(body) > 0 {
		return &APIError{StatusCode: statusCode, Message: string(body)}
	}

	return &APIError{StatusCode: statusCode, Message: fmt.Sprintf("HTTP %d", statusCode)}
}
