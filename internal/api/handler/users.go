package handler

import (
	"errors"
	"net/http"

	"github.com/indubai/portal-api/internal/domain"
	"github.com/indubai/portal-api/internal/usecases/usermanaging"
	"github.com/indubai/portal-api/pkg/apiErrors"
	"github.com/indubai/portal-api/pkg/log"
	"github.com/indubai/portal-api/pkg/middleware"
)

var okResponse = map[string]bool{"ok": true}

func CreateUser(service usermanaging.UserManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request domain.CreateUserRequest
		if err := decodeBody(r, &request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid request body", nil)
			return
		}

		created, err := service.CreateUser(r.Context(), &request)
		if err != nil {
			writeUserError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, created)
	}
}

func CreateClientUser(service usermanaging.UserManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request domain.CreateClientUserRequest
		if err := decodeBody(r, &request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid request body", nil)
			return
		}

		userID, err := service.CreateClientUser(r.Context(), &request)
		if err != nil {
			writeUserError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"id": userID})
	}
}

// DeleteUser serves both delete endpoints; they only differ in method and id field name.
func DeleteUser(service usermanaging.UserManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request domain.DeleteUserRequest
		if err := decodeBody(r, &request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid request body", nil)
			return
		}

		if err := service.DeleteUser(r.Context(), request.ID()); err != nil {
			writeUserError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, okResponse)
	}
}

func UpdatePassword(service usermanaging.UserManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request domain.UpdatePasswordRequest
		if err := decodeBody(r, &request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid request body", nil)
			return
		}

		caller := middleware.CallerFromContext(r.Context())
		if err := service.UpdatePassword(r.Context(), caller, &request); err != nil {
			writeUserError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, okResponse)
	}
}

func writeUserError(w http.ResponseWriter, r *http.Request, err error) {
	var userErr *usermanaging.UserError
	if errors.As(err, &userErr) {
		log.ForContext(r.Context()).WithFields(log.Fields{
			"user_id": userErr.UserID,
			"code":    userErr.Code,
		}).WithError(err).Warn("User operation rejected")

		apiErrors.WriteError(w, userErr.Code, userErr.Message(), nil)
		return
	}

	log.ForContext(r.Context()).WithError(err).Error("User operation failed")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
}
