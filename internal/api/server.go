package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"

	"github.com/indubai/portal-api/infrastructure/integrator/zoho"
	"github.com/indubai/portal-api/infrastructure/repository"
	"github.com/indubai/portal-api/internal/api/handler"
	"github.com/indubai/portal-api/internal/api/handler/router"
	"github.com/indubai/portal-api/internal/config"
	"github.com/indubai/portal-api/internal/scheduler"
	"github.com/indubai/portal-api/internal/usecases/authenticating"
	"github.com/indubai/portal-api/internal/usecases/summarizing"
	"github.com/indubai/portal-api/internal/usecases/usermanaging"
	"github.com/indubai/portal-api/pkg/middleware"
)

// A client_summary over a large organization walks many invoice pages.
const writeTimeout = 2 * time.Minute

type Server struct {
	httpServer *http.Server
}

// Dependencies are the services the HTTP layer is built from.
type Dependencies struct {
	DB            handler.Pinger
	Zoho          zoho.ZohoIntegrator
	Summarizer    summarizing.Summarizer
	Syncer        scheduler.SnapshotSyncer
	Snapshots     repository.ZohoSnapshotRepository
	Authenticator authenticating.Authenticator
	Users         usermanaging.UserManager
}

func New(config *config.Config, deps Dependencies) (*Server, error) {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck(deps.DB)...),
		router.WithRoutes(handler.ZohoProxyRoutes(deps.Zoho, deps.Summarizer, deps.Syncer)...),
		router.WithRoutes(handler.Snapshots(deps.Snapshots)...),
		router.WithRoutes(handler.Users(deps.Users)...),
		router.WithRoutes(handler.CronJobs(deps.Syncer)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
		middleware.AuthMiddleware(deps.Authenticator),
	}

	handler := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
			WriteTimeout:      writeTimeout,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Server starting")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Server stopped with error")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Interrupt signal received")
	case <-ctx.Done():
		logrus.Info("Application context cancelled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Starting graceful shutdown")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Error during shutdown")
		return err
	}

	logrus.Info("Server stopped")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	logrus.Info("Running cleanup before shutdown")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("HTTP server stopped")
	return nil
}
