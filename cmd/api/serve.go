package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/indubai/portal-api/infrastructure/database/postgres"
	"github.com/indubai/portal-api/infrastructure/integrator/supabase"
	"github.com/indubai/portal-api/infrastructure/integrator/supabase/supabaseclient"
	"github.com/indubai/portal-api/internal/api"
	"github.com/indubai/portal-api/internal/usecases/authenticating"
	"github.com/indubai/portal-api/internal/usecases/usermanaging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and the snapshot sync scheduler",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if skip, _ := cmd.Flags().GetBool("skip-migrations"); !skip {
		if err := postgres.Migrate(cfg.Database); err != nil {
			return err
		}
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	backend := supabase.New(cfg, supabaseclient.NewClient(cfg, nil))
	authenticator := authenticating.NewService(cfg, backend)
	users := usermanaging.NewService(cfg, backend)

	if err := a.syncer.Start(ctx); err != nil {
		logrus.WithError(err).Error("Could not start the Zoho snapshot sync scheduler")
	}

	server, err := api.New(cfg, api.Dependencies{
		DB:            a.db,
		Zoho:          a.zoho,
		Summarizer:    a.summarizer,
		Syncer:        a.syncer,
		Snapshots:     a.snapshots,
		Authenticator: authenticator,
		Users:         users,
	})
	if err != nil {
		return err
	}

	return server.Run(ctx)
}
