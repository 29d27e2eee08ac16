package main

import (
	"github.com/spf13/cobra"

	"github.com/indubai/portal-api/infrastructure/database/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the embedded schema migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return postgres.Migrate(cfg.Database)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
