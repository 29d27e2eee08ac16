package authenticating

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	supabasedomain "github.com/indubai/portal-api/infrastructure/integrator/supabase/domain"
	supabasemocks "github.com/indubai/portal-api/infrastructure/integrator/supabase/mocks"
	"github.com/indubai/portal-api/internal/config"
	"github.com/indubai/portal-api/internal/domain"
	"github.com/indubai/portal-api/pkg/apiErrors"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

func signToken(t *testing.T, secret string, method jwt.SigningMethod, claims domain.Claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func sessionClaims(subject string, expiresIn time.Duration) domain.Claims {
	return domain.Claims{
		Email: "sara@indubai.ae",
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
}

func newTestService(t *testing.T, secret string) (*supabasemocks.MockAuthBackend, Authenticator) {
	ctrl := gomock.NewController(t)
	backend := supabasemocks.NewMockAuthBackend(ctrl)

	cfg := &config.Config{Supabase: config.Supabase{JWTSecret: secret, RoleCacheTTL: time.Minute}}
	return backend, NewService(cfg, backend)
}

func TestAuthenticate_LocalJWT(t *testing.T) {
	backend, service := newTestService(t, testSecret)

	backend.EXPECT().
		GetProfile(gomock.Any(), "user-1").
		Return(&supabasedomain.Profile{ID: "user-1", Role: "admin"}, nil).
		Times(1)

	token := signToken(t, testSecret, jwt.SigningMethodHS256, sessionClaims("user-1", time.Hour))

	for i := 0; i < 3; i++ {
		caller, err := service.Authenticate(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, &domain.Caller{UserID: "user-1", Email: "sara@indubai.ae", Role: domain.RoleAdmin}, caller)
	}
}

func TestAuthenticate_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		token    func(t *testing.T) string
		wantErr  error
		wantCode string
	}{
		{
			name:     "missing token",
			token:    func(*testing.T) string { return "" },
			wantErr:  ErrMissingToken,
			wantCode: apiErrors.ErrUnauthenticated,
		},
		{
			name: "expired token",
			token: func(t *testing.T) string {
				return signToken(t, testSecret, jwt.SigningMethodHS256, sessionClaims("user-1", -time.Minute))
			},
			wantErr:  ErrExpiredToken,
			wantCode: apiErrors.ErrExpiredToken,
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				return signToken(t, "another-secret", jwt.SigningMethodHS256, sessionClaims("user-1", time.Hour))
			},
			wantErr:  ErrInvalidToken,
			wantCode: apiErrors.ErrInvalidToken,
		},
		{
			name: "other hmac algorithm",
			token: func(t *testing.T) string {
				return signToken(t, testSecret, jwt.SigningMethodHS512, sessionClaims("user-1", time.Hour))
			},
			wantErr:  ErrInvalidToken,
			wantCode: apiErrors.ErrInvalidToken,
		},
		{
			name: "no subject",
			token: func(t *testing.T) string {
				return signToken(t, testSecret, jwt.SigningMethodHS256, sessionClaims("", time.Hour))
			},
			wantErr:  ErrInvalidToken,
			wantCode: apiErrors.ErrInvalidToken,
		},
		{
			name:     "garbage",
			token:    func(*testing.T) string { return "not-a-jwt" },
			wantErr:  ErrInvalidToken,
			wantCode: apiErrors.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, service := newTestService(t, testSecret)

			caller, err := service.Authenticate(context.Background(), tt.token(t))
			assert.Nil(t, caller)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantCode, CodeFor(err))
		})
	}
}

func TestAuthenticate_RemoteLookupWithoutSecret(t *testing.T) {
	backend, service := newTestService(t, "")

	backend.EXPECT().
		GetUser(gomock.Any(), "opaque-token").
		Return(&supabasedomain.User{ID: "user-2", Email: "omar@indubai.ae"}, nil)
	backend.EXPECT().
		GetProfile(gomock.Any(), "user-2").
		Return(&supabasedomain.Profile{ID: "user-2", Role: "junior"}, nil)

	caller, err := service.Authenticate(context.Background(), "opaque-token")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleJunior, caller.Role)
	assert.False(t, caller.IsAdmin())
}

func TestAuthenticate_ProfileLookup(t *testing.T) {
	t.Run("missing profile gives no role and is not cached", func(t *testing.T) {
		backend, service := newTestService(t, testSecret)
		token := signToken(t, testSecret, jwt.SigningMethodHS256, sessionClaims("user-3", time.Hour))

		backend.EXPECT().GetProfile(gomock.Any(), "user-3").Return(nil, nil).Times(2)

		for i := 0; i < 2; i++ {
			caller, err := service.Authenticate(context.Background(), token)
			require.NoError(t, err)
			assert.Equal(t, domain.PortalRole(""), caller.Role)
		}
	})

	t.Run("backend failure", func(t *testing.T) {
		backend, service := newTestService(t, testSecret)
		token := signToken(t, testSecret, jwt.SigningMethodHS256, sessionClaims("user-4", time.Hour))

		backend.EXPECT().GetProfile(gomock.Any(), "user-4").Return(nil, errors.New("timeout"))

		_, err := service.Authenticate(context.Background(), token)
		assert.ErrorIs(t, err, ErrRoleLookup)
		assert.Equal(t, apiErrors.ErrExternalService, CodeFor(err))
	})
}
