package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Pinger is anything the healthcheck can probe, usually the database.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthcheckHandler(db Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		}

		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := db.Ping(ctx); err != nil {
				logrus.WithError(err).Warn("Healthcheck: database unreachable")
				status["status"] = "degraded"
				status["database"] = err.Error()
				writeJSON(w, http.StatusServiceUnavailable, status)
				return
			}
		}

		writeJSON(w, http.StatusOK, status)
	})
}
