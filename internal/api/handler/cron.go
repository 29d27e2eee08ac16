package handler

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/indubai/portal-api/internal/scheduler"
	"github.com/indubai/portal-api/pkg/apiErrors"
)

const CronJobTypeZohoSync = "zoho-sync"

// RunZohoSync starts a snapshot sync in the background.
func RunZohoSync(syncer scheduler.SnapshotSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunZohoSync")

		if err := syncer.TriggerManualSync(); err != nil {
			if errors.Is(err, scheduler.ErrSyncInProgress) {
				apiErrors.WriteError(w, apiErrors.ErrSyncInProgress, "A Zoho sync is already running", nil)
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job started",
			"type":    CronJobTypeZohoSync,
		})
	}
}

func GetCronStatus(syncer scheduler.SnapshotSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			CronJobTypeZohoSync: syncer.GetStatus(),
		})
	}
}
