package authenticating

import (
	"errors"
	"fmt"

	"github.com/indubai/portal-api/pkg/apiErrors"
)

var (
	ErrMissingToken          = errors.New("bearer token is required")
	ErrInvalidToken          = errors.New("invalid token")
	ErrExpiredToken          = errors.New("token expired")
	ErrInsufficientPrivilege = errors.New("insufficient privileges")
	ErrRoleLookup            = errors.New("could not load portal role")
)

// AuthError carries the API error code the failure maps to.
type AuthError struct {
	Err     error
	Code    string
	UserID  string
	Details string
}

func (e *AuthError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

func NewAuthError(baseErr error, code string, details string) *AuthError {
	return &AuthError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

// CodeFor returns the API error code of an authentication failure.
func CodeFor(err error) string {
	var authErr *AuthError
	if errors.As(err, &authErr) && authErr.Code != "" {
		return authErr.Code
	}

	switch {
	case errors.Is(err, ErrMissingToken):
		return apiErrors.ErrUnauthenticated
	case errors.Is(err, ErrExpiredToken):
		return apiErrors.ErrExpiredToken
	case errors.Is(err, ErrInvalidToken):
		return apiErrors.ErrInvalidToken
	case errors.Is(err, ErrInsufficientPrivilege):
		return apiErrors.ErrInsufficientPrivilege
	default:
		return apiErrors.ErrInternalServer
	}
}
