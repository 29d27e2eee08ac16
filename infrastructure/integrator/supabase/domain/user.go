package supabasedomain

// User is an account of the auth backend.
type User struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	Role         string         `json:"role,omitempty"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
}

// AdminUserAttributes is the body of the admin create and update user endpoints.
type AdminUserAttributes struct {
	Email        string         `json:"email,omitempty"`
	Password     string         `json:"password,omitempty"`
	EmailConfirm bool           `json:"email_confirm,omitempty"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
}

// Profile is a row of the profiles table, created by a trigger when an auth user is added.
type Profile struct {
	ID       string `json:"id"`
	FullName string `json:"full_name,omitempty"`
	Role     string `json:"role,omitempty"`
}

// ClientUser links a portal login to the client it may see.
type ClientUser struct {
	UserID   string `json:"user_id"`
	ClientID string `json:"client_id"`
}
