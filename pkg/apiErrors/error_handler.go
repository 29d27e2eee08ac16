package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// Authentication errors
	ErrUnauthenticated       = "AUTH_001" // missing or malformed bearer token
	ErrInvalidToken          = "AUTH_002"
	ErrExpiredToken          = "AUTH_003"
	ErrInsufficientPrivilege = "AUTH_004"
	ErrUserNotFound          = "AUTH_005"

	// Validation errors
	ErrInvalidRequest      = "VAL_001"
	ErrMissingRequiredData = "VAL_002"
	ErrInvalidFormat       = "VAL_003"
	ErrUnknownAction       = "VAL_004"

	// Server errors
	ErrInternalServer    = "SRV_001"
	ErrDatabaseOperation = "SRV_002"
	ErrExternalService   = "SRV_003"
	ErrUpstreamAuth      = "SRV_004" // Zoho OAuth refresh failed
	ErrSyncInProgress    = "SRV_005"
	ErrBackendRejected   = "SRV_006" // auth backend refused the admin operation
	ErrNotFound          = "SRV_007"
	ErrMethodNotAllowed  = "SRV_008"
)

var httpStatusMap = map[string]int{
	ErrUnauthenticated:       http.StatusUnauthorized,
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrUserNotFound:          http.StatusNotFound,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrUnknownAction:         http.StatusBadRequest,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrExternalService:       http.StatusInternalServerError,
	ErrUpstreamAuth:          http.StatusInternalServerError,
	ErrSyncInProgress:        http.StatusConflict,
	ErrBackendRejected:       http.StatusBadRequest,
	ErrNotFound:              http.StatusNotFound,
	ErrMethodNotAllowed:      http.StatusMethodNotAllowed,
}

// APIError is the error body written by every handler. Error mirrors Message because the
// portal front-end reads the "error" field.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Details any    `json:"details,omitempty"`
}

// StatusFor returns the HTTP status of an error code.
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError writes a coded error response.
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Error:   message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	_ = json.NewEncoder(w).Encode(apiErr)
}

// FromError wraps a Go error into an APIError.
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "unknown error",
			Error:   "unknown error",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
		Error:   err.Error(),
	}
}
