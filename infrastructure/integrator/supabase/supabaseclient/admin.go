package supabaseclient

import (
	"context"
	"net/http"
	"net/url"

	supabasedomain "github.com/indubai/portal-api/infrastructure/integrator/supabase/domain"
)

func adminUserPath(userID string) string {
	return "/auth/v1/admin/users/" + url.PathEscape(userID)
}

func (c *SupabaseClient) CreateUser(ctx context.Context, attrs supabasedomain.AdminUserAttributes) (*supabasedomain.User, error) {
	var user supabasedomain.User
	if err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/v1/admin/users",
		body:   attrs,
	}, &user); err != nil {
		return nil, err
	}

	if user.ID == "" {
		return nil, &supabasedomain.APIError{StatusCode: http.StatusOK, Message: "auth backend returned a user without id"}
	}

	return &user, nil
}

func (c *SupabaseClient) UpdateUser(ctx context.Context, userID string, attrs supabasedomain.AdminUserAttributes) error {
	return c.do(ctx, request{
		method: http.MethodPut,
		path:   adminUserPath(userID),
		body:   attrs,
	}, nil)
}

// DeleteUser removes the auth user; profiles and client_users rows cascade in the backend.
func (c *SupabaseClient) DeleteUser(ctx context.Context, userID string) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		path:   adminUserPath(userID),
	}, nil)
}

// GetUser resolves the user owning a session access token.
func (c *SupabaseClient) GetUser(ctx context.Context, accessToken string) (*supabasedomain.User, error) {
	var user supabasedomain.User
	if err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/auth/v1/user",
		bearer: accessToken,
	}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
