package supabase

import (
	"context"
	"fmt"

	supabasedomain "github.com/indubai/portal-api/infrastructure/integrator/supabase/domain"
	"github.com/indubai/portal-api/infrastructure/integrator/supabase/supabaseclient"
	"github.com/indubai/portal-api/internal/config"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

const (
	profilesTable    = "profiles"
	clientUsersTable = "client_users"
)

// AuthBackend is the set of auth and database operations the portal performs with the
// service key.
type AuthBackend interface {
	CreateUser(ctx context.Context, attrs supabasedomain.AdminUserAttributes) (*supabasedomain.User, error)
	DeleteUser(ctx context.Context, userID string) error
	UpdatePassword(ctx context.Context, userID, password string) error
	GetUser(ctx context.Context, accessToken string) (*supabasedomain.User, error)

	// GetProfile returns nil when the user has no profile row.
	GetProfile(ctx context.Context, userID string) (*supabasedomain.Profile, error)
	UpdateProfile(ctx context.Context, profile supabasedomain.Profile) error
	UpsertProfile(ctx context.Context, profile supabasedomain.Profile) error
	LinkClientUser(ctx context.Context, link supabasedomain.ClientUser) error
}

type SupabaseService struct {
	cfg    *config.Config
	Client supabaseclient.Client
}

func New(cfg *config.Config, client supabaseclient.Client) AuthBackend {
	return &SupabaseService{
		cfg:    cfg,
		Client: client,
	}
}

func (s *SupabaseService) CreateUser(ctx context.Context, attrs supabasedomain.AdminUserAttributes) (*supabasedomain.User, error) {
	return s.Client.CreateUser(ctx, attrs)
}

func (s *SupabaseService) DeleteUser(ctx context.Context, userID string) error {
	return s.Client.DeleteUser(ctx, userID)
}

func (s *SupabaseService) UpdatePassword(ctx context.Context, userID, password string) error {
	return s.Client.UpdateUser(ctx, userID, supabasedomain.AdminUserAttributes{Password: password})
}

func (s *SupabaseService) GetUser(ctx context.Context, accessToken string) (*supabasedomain.User, error) {
	return s.Client.GetUser(ctx, accessToken)
}

func (s *SupabaseService) GetProfile(ctx context.Context, userID string) (*supabasedomain.Profile, error) {
	var profiles []supabasedomain.Profile

	err := s.Client.Select(ctx, profilesTable, supabaseclient.Query{
		Columns: "id,full_name,role",
		Filter:  supabaseclient.Eq("id", userID),
		Limit:   1,
	}, &profiles)
	if err != nil {
		return nil, fmt.Errorf("loading profile %s: %w", userID, err)
	}

	if len(profiles) == 0 {
		return nil, nil
	}

	return &profiles[0], nil
}

// UpdateProfile patches role and full name of an existing profile.
func (s *SupabaseService) UpdateProfile(ctx context.Context, profile supabasedomain.Profile) error {
	patch := map[string]string{}
	if profile.Role != "" {
		patch["role"] = profile.Role
	}
	if profile.FullName != "" {
		patch["full_name"] = profile.FullName
	}

	return s.Client.Update(ctx, profilesTable, supabaseclient.Eq("id", profile.ID), patch, nil)
}

func (s *SupabaseService) UpsertProfile(ctx context.Context, profile supabasedomain.Profile) error {
	return s.Client.Upsert(ctx, profilesTable, profile, "id", nil)
}

func (s *SupabaseService) LinkClientUser(ctx context.Context, link supabasedomain.ClientUser) error {
	var inserted []supabasedomain.ClientUser
	return s.Client.Insert(ctx, clientUsersTable, link, &inserted)
}
