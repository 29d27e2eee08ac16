package middleware

import (
	"net/http"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/indubai/portal-api/internal/domain"
	"github.com/indubai/portal-api/pkg/apiErrors"
)

// RoleMiddleware restricts a route to the given portal roles.
func RoleMiddleware(allowedRoles ...domain.PortalRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller := CallerFromContext(r.Context())
			if caller == nil {
				logrus.Warning("Access attempt without authentication")
				apiErrors.WriteError(w, apiErrors.ErrUnauthenticated, "Unauthorized", nil)
				return
			}

			if !slices.Contains(allowedRoles, caller.Role) {
				logrus.WithFields(logrus.Fields{
					"user_id": caller.UserID,
					"role":    caller.Role,
					"path":    r.URL.Path,
				}).Warning("Access denied")
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Admin only", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func AdminOnly() func(http.Handler) http.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}

// StaffOnly lets in the InDubai team (admins and juniors) but not client logins.
func StaffOnly() func(http.Handler) http.Handler {
	return RoleMiddleware(domain.RoleAdmin, domain.RoleJunior)
}

func AllRoles() func(http.Handler) http.Handler {
	return RoleMiddleware(domain.RoleAdmin, domain.RoleJunior, domain.RoleClient)
}
