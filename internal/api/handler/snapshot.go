package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/indubai/portal-api/infrastructure/repository"
	"github.com/indubai/portal-api/pkg/apiErrors"
	"github.com/indubai/portal-api/pkg/log"
)

// GetZohoSnapshot returns the stored snapshot of a client, as written by the last sync.
func GetZohoSnapshot(snapshots repository.ZohoSnapshotRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if clientID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "client id is required", nil)
			return
		}

		snapshot, err := snapshots.GetByClientID(r.Context(), clientID)
		if err != nil {
			log.ForContext(r.Context()).WithField("client_id", clientID).WithError(err).Error("Could not read Zoho snapshot")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Could not read snapshot", nil)
			return
		}

		if snapshot == nil {
			apiErrors.WriteError(w, apiErrors.ErrNotFound, "No Zoho snapshot for this client", nil)
			return
		}

		writeJSON(w, http.StatusOK, snapshot)
	}
}
