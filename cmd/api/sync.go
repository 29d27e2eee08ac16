package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one Zoho snapshot sync pass and exit",
	Long: `Computes the financial summary of every active client linked to a Zoho
organization and stores it as that client's snapshot. A failing client is
counted and skipped; the others are still synced.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.syncer.RunSync(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "synced=%d errors=%d\n", result.Synced, result.Errors)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
