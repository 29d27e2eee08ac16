package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

type PortalRole string

const (
	RoleAdmin  PortalRole = "admin"
	RoleJunior PortalRole = "junior"
	RoleClient PortalRole = "client"
)

func (r PortalRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleJunior, RoleClient:
		return true
	}
	return false
}

// Claims are the claims of a session token issued by the auth backend.
type Claims struct {
	Email        string         `json:"email"`
	Role         string         `json:"role"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
	jwt.RegisteredClaims
}

// Caller is the authenticated user of a request.
type Caller struct {
	UserID string
	Email  string
	Role   PortalRole
}

func (c *Caller) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}

type CreateUserRequest struct {
	Email    string     `json:"email"`
	Password string     `json:"password"`
	FullName string     `json:"full_name"`
	Role     PortalRole `json:"role"`
}

type CreateUserResponse struct {
	ID       string     `json:"id"`
	Email    string     `json:"email"`
	FullName string     `json:"full_name"`
	Role     PortalRole `json:"role"`
}

type CreateClientUserRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	ClientID    string `json:"client_id"`
	CompanyName string `json:"company_name"`
}

type DeleteUserRequest struct {
	UserID    string `json:"user_id"`
	UserIDAlt string `json:"userId"`
}

// ID returns whichever id field the caller sent; the two admin screens disagree on the name.
func (r DeleteUserRequest) ID() string {
	if r.UserID != "" {
		return r.UserID
	}
	return r.UserIDAlt
}

type UpdatePasswordRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}
