package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/indubai/portal-api/internal/domain"
	"github.com/indubai/portal-api/internal/usecases/authenticating"
	"github.com/indubai/portal-api/pkg/apiErrors"
	"github.com/indubai/portal-api/pkg/log"
)

type contextKey string

const (
	ContextKeyUser contextKey = "user"
)

var publicPaths = map[string]bool{
	"/healthcheck": true,
	"/metrics":     true,
}

// AuthMiddleware resolves the bearer token into a domain.Caller stored in the request
// context. Public paths pass through untouched.
func AuthMiddleware(authService authenticating.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apiErrors.WriteError(w, apiErrors.ErrUnauthenticated, "Unauthorized", nil)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				apiErrors.WriteError(w, apiErrors.ErrUnauthenticated, "Bearer token is required", nil)
				return
			}

			caller, err := authService.Authenticate(r.Context(), tokenString)
			if err != nil {
				log.ForContext(r.Context()).WithError(err).Warn("Request rejected by authentication")

				code := authenticating.CodeFor(err)
				message := "Invalid token"
				if code == apiErrors.ErrExternalService {
					message = "Could not verify user"
				}
				apiErrors.WriteError(w, code, message, nil)
				return
			}

			ctx := WithCaller(r.Context(), caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func WithCaller(ctx context.Context, caller *domain.Caller) context.Context {
	return context.WithValue(ctx, ContextKeyUser, caller)
}

// CallerFromContext returns the authenticated caller, or nil on public routes.
func CallerFromContext(ctx context.Context) *domain.Caller {
	caller, _ := ctx.Value(ContextKeyUser).(*domain.Caller)
	return caller
}
