package usermanaging

import (
	"errors"
	"fmt"
	"strings"

	"github.com/indubai/portal-api/internal/domain"
	"github.com/indubai/portal-api/pkg/apiErrors"
)

var (
	ErrMissingFields         = errors.New("missing fields")
	ErrInvalidRole           = errors.New("invalid role")
	ErrBackendRejected       = errors.New("auth backend rejected the request")
	ErrClientLinkFailed      = errors.New("could not link user to client")
	ErrInsufficientPrivilege = errors.New("not allowed")
)

// UserError carries the API error code and the message shown to the admin.
type UserError struct {
	Err     error
	Code    string
	UserID  string
	Details string
}

func (e *UserError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// Message is what the portal shows; backend rejections surface the backend's own message.
func (e *UserError) Message() string {
	if e.Details != "" && !errors.Is(e.Err, ErrMissingFields) {
		return e.Details
	}
	return e.Error()
}

func NewUserError(err error, code string, details string) *UserError {
	return &UserError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func missingFields(fields ...string) *UserError {
	return NewUserError(ErrMissingFields, apiErrors.ErrMissingRequiredData, strings.Join(fields, ", "))
}

func rejected(err error, userID string) *UserError {
	return &UserError{Err: ErrBackendRejected, Code: apiErrors.ErrBackendRejected, UserID: userID, Details: err.Error()}
}

func invalidRole(role domain.PortalRole) *UserError {
	return &UserError{
		Err:     ErrInvalidRole,
		Code:    apiErrors.ErrInvalidFormat,
		Details: fmt.Sprintf("role must be one of admin, junior, client; got %q", role),
	}
}
