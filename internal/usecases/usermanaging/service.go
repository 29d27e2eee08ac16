package usermanaging

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/indubai/portal-api/infrastructure/integrator/supabase"
	supabasedomain "github.com/indubai/portal-api/infrastructure/integrator/supabase/domain"
	"github.com/indubai/portal-api/internal/config"
	"github.com/indubai/portal-api/internal/domain"
	"github.com/indubai/portal-api/pkg/apiErrors"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_user_manager.go -package=mocks

type UserManager interface {
	CreateUser(ctx context.Context, request *domain.CreateUserRequest) (*domain.CreateUserResponse, error)
	CreateClientUser(ctx context.Context, request *domain.CreateClientUserRequest) (string, error)
	DeleteUser(ctx context.Context, userID string) error
	// UpdatePassword lets a user change their own password and an admin change anyone's.
	UpdatePassword(ctx context.Context, caller *domain.Caller, request *domain.UpdatePasswordRequest) error
}

type Service struct {
	backend      supabase.AuthBackend
	triggerDelay time.Duration
}

func NewService(cfg *config.Config, backend supabase.AuthBackend) UserManager {
	return &Service{
		backend:      backend,
		triggerDelay: cfg.Supabase.ProfileTriggerDelay,
	}
}

func (s *Service) CreateUser(ctx context.Context, request *domain.CreateUserRequest) (*domain.CreateUserResponse, error) {
	if request.Email == "" || request.Password == "" || request.FullName == "" {
		return nil, missingFields("email", "password", "full_name")
	}

	role := request.Role
	if role == "" {
		role = domain.RoleJunior
	}
	if !role.Valid() {
		return nil, invalidRole(role)
	}

	created, err := s.backend.CreateUser(ctx, supabasedomain.AdminUserAttributes{
		Email:        request.Email,
		Password:     request.Password,
		EmailConfirm: true,
		UserMetadata: map[string]any{"full_name": request.FullName},
	})
	if err != nil {
		return nil, rejected(err, "")
	}

	if err := s.waitForProfile(ctx); err != nil {
		return nil, err
	}

	// The profile row exists by now; a failed patch leaves a user with the default role, which
	// an admin can fix from the portal.
	err = s.backend.UpdateProfile(ctx, supabasedomain.Profile{ID: created.ID, FullName: request.FullName, Role: string(role)})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": created.ID,
			"role":    role,
		}).WithError(err).Warn("Could not set role on new profile")
	}

	logrus.WithFields(logrus.Fields{"user_id": created.ID, "role": role}).Info("Portal user created")

	return &domain.CreateUserResponse{
		ID:       created.ID,
		Email:    request.Email,
		FullName: request.FullName,
		Role:     role,
	}, nil
}

// CreateClientUser creates a login for a client and links it to the client. When the link
// cannot be written the login is deleted again.
func (s *Service) CreateClientUser(ctx context.Context, request *domain.CreateClientUserRequest) (string, error) {
	if request.Email == "" || request.Password == "" || request.ClientID == "" {
		return "", missingFields("email", "password", "client_id")
	}

	fullName := strings.TrimSpace(request.CompanyName)
	if fullName == "" {
		fullName = request.Email
	}

	created, err := s.backend.CreateUser(ctx, supabasedomain.AdminUserAttributes{
		Email:        request.Email,
		Password:     request.Password,
		EmailConfirm: true,
		UserMetadata: map[string]any{"full_name": fullName, "role": string(domain.RoleClient)},
	})
	if err != nil {
		return "", rejected(err, "")
	}

	if err := s.waitForProfile(ctx); err != nil {
		return "", err
	}

	err = s.backend.UpsertProfile(ctx, supabasedomain.Profile{ID: created.ID, FullName: fullName, Role: string(domain.RoleClient)})
	if err != nil {
		logrus.WithField("user_id", created.ID).WithError(err).Warn("Could not upsert client profile")
	}

	linkErr := s.backend.LinkClientUser(ctx, supabasedomain.ClientUser{UserID: created.ID, ClientID: request.ClientID})
	if linkErr != nil {
		log := logrus.WithFields(logrus.Fields{
			"user_id":   created.ID,
			"client_id": request.ClientID,
		})
		log.WithError(linkErr).Error("Could not link user to client, rolling back")

		if err := s.backend.DeleteUser(ctx, created.ID); err != nil {
			log.WithError(err).Error("Rollback of client user failed")
		}

		return "", &UserError{Err: ErrClientLinkFailed, Code: apiErrors.ErrBackendRejected, UserID: created.ID, Details: linkErr.Error()}
	}

	logrus.WithFields(logrus.Fields{"user_id": created.ID, "client_id": request.ClientID}).Info("Client user created")

	return created.ID, nil
}

func (s *Service) DeleteUser(ctx context.Context, userID string) error {
	if userID == "" {
		return missingFields("user_id")
	}

	if err := s.backend.DeleteUser(ctx, userID); err != nil {
		return rejected(err, userID)
	}

	logrus.WithField("user_id", userID).Info("Portal user deleted")
	return nil
}

func (s *Service) UpdatePassword(ctx context.Context, caller *domain.Caller, request *domain.UpdatePasswordRequest) error {
	if request.UserID == "" || request.Password == "" {
		return missingFields("userId", "password")
	}

	if caller == nil || (caller.UserID != request.UserID && !caller.IsAdmin()) {
		return NewUserError(ErrInsufficientPrivilege, apiErrors.ErrInsufficientPrivilege, "")
	}

	if err := s.backend.UpdatePassword(ctx, request.UserID, request.Password); err != nil {
		return rejected(err, request.UserID)
	}

	return nil
}

// waitForProfile gives the backend trigger that creates the profile row time to run.
func (s *Service) waitForProfile(ctx context.Context) error {
	if s.triggerDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(s.triggerDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
