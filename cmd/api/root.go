package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/indubai/portal-api/internal/config"
	"github.com/indubai/portal-api/pkg/log"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "portal-api",
	Short: "InDubai portal API: Zoho Books proxy, snapshot sync and user administration",
	Long: `portal-api serves the InDubai client portal.

It proxies Zoho Books (organization listing, per-client financial summaries with
VAT threshold tracking), keeps a nightly snapshot of every linked client, and
manages portal logins through the auth backend.

Without a subcommand it starts the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.NewConfig()
		if err != nil {
			return err
		}

		log.Configure(cfg.App.LogLevel)
		logrus.Infof("Log level set to %s", logrus.GetLevel())

		return nil
	},
	RunE: runServe,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("Command execution failed")
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("skip-migrations", false, "Do not apply schema migrations on startup")
}
