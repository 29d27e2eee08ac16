package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/indubai/portal-api/infrastructure/integrator/zoho"
	"github.com/indubai/portal-api/infrastructure/repository"
	"github.com/indubai/portal-api/internal/api/handler/router"
	"github.com/indubai/portal-api/internal/scheduler"
	"github.com/indubai/portal-api/internal/usecases/summarizing"
	"github.com/indubai/portal-api/internal/usecases/usermanaging"
	"github.com/indubai/portal-api/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

// ZohoProxyRoutes serves the portal's single Zoho endpoint. Preflight requests are answered
// by the CORS middleware before they reach the router.
func ZohoProxyRoutes(zohoService zoho.ZohoIntegrator, summarizer summarizing.Summarizer, syncer scheduler.SnapshotSyncer) []router.Route {
	return []router.Route{
		{
			Path:        "/zoho-proxy",
			Method:      http.MethodPost,
			Handler:     ZohoProxy(zohoService, summarizer, syncer),
			Middlewares: []func(http.Handler) http.Handler{middleware.StaffOnly()},
		},
	}
}

func Snapshots(snapshots repository.ZohoSnapshotRepository) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/clients/:id/zoho-snapshot",
			Method:      http.MethodGet,
			Handler:     GetZohoSnapshot(snapshots),
			Middlewares: []func(http.Handler) http.Handler{middleware.StaffOnly()},
		},
	}
}

func Users(service usermanaging.UserManager) []router.Route {
	return []router.Route{
		{
			Path:        "/api/create-user",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/api/create-client-user",
			Method:      http.MethodPost,
			Handler:     CreateClientUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/api/delete-user",
			Method:      http.MethodDelete,
			Handler:     DeleteUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/api/delete-client-user",
			Method:      http.MethodPost,
			Handler:     DeleteUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/api/update-password",
			Method:      http.MethodPost,
			Handler:     UpdatePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(syncer scheduler.SnapshotSyncer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/zoho-sync/run",
			Method:      http.MethodPost,
			Handler:     RunZohoSync(syncer),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(syncer),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
