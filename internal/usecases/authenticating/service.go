package authenticating

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"

	"github.com/indubai/portal-api/infrastructure/integrator/supabase"
	"github.com/indubai/portal-api/internal/config"
	"github.com/indubai/portal-api/internal/domain"
	"github.com/indubai/portal-api/pkg/apiErrors"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_authenticator.go -package=mocks

const roleCacheSize = 512

type Authenticator interface {
	// Authenticate resolves the portal user behind a session access token.
	Authenticate(ctx context.Context, accessToken string) (*domain.Caller, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	cfg     *config.Config
	backend supabase.AuthBackend
	roles   *expirable.LRU[string, domain.PortalRole]
}

func NewService(cfg *config.Config, backend supabase.AuthBackend) Authenticator {
	ttl := cfg.Supabase.RoleCacheTTL
	if ttl <= 0 {
		ttl = time.Minute
	}

	return &Service{
		cfg:     cfg,
		backend: backend,
		roles:   expirable.NewLRU[string, domain.PortalRole](roleCacheSize, nil, ttl),
	}
}

func (s *Service) Authenticate(ctx context.Context, accessToken string) (*domain.Caller, error) {
	if accessToken == "" {
		return nil, NewAuthError(ErrMissingToken, apiErrors.ErrUnauthenticated, "")
	}

	caller, err := s.identify(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	role, err := s.role(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	caller.Role = role

	return caller, nil
}

// identify validates the token locally when the JWT secret is configured, otherwise it asks
// the auth backend who owns the token.
func (s *Service) identify(ctx context.Context, accessToken string) (*domain.Caller, error) {
	if s.cfg.Supabase.JWTSecret != "" {
		claims, err := s.ValidateToken(accessToken)
		if err != nil {
			return nil, err
		}
		return &domain.Caller{UserID: claims.Subject, Email: claims.Email}, nil
	}

	user, err := s.backend.GetUser(ctx, accessToken)
	if err != nil {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	return &domain.Caller{UserID: user.ID, Email: user.Email}, nil
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Supabase.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "missing subject")
	}

	return claims, nil
}

// role reads the portal role from the profiles table. Known roles are cached for
// RoleCacheTTL; a missing profile is not cached so a freshly created user shows up quickly.
func (s *Service) role(ctx context.Context, userID string) (domain.PortalRole, error) {
	if role, ok := s.roles.Get(userID); ok {
		return role, nil
	}

	profile, err := s.backend.GetProfile(ctx, userID)
	if err != nil {
		logrus.WithField("user_id", userID).WithError(err).Error("Could not load portal role")
		return "", &AuthError{Err: ErrRoleLookup, Code: apiErrors.ErrExternalService, UserID: userID}
	}

	if profile == nil || profile.Role == "" {
		return "", nil
	}

	role := domain.PortalRole(profile.Role)
	s.roles.Add(userID, role)

	return role, nil
}
