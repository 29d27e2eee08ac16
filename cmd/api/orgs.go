package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var orgsCmd = &cobra.Command{
	Use:   "orgs",
	Short: "List the Zoho Books organizations the configured credentials can see",
	Long: `Lists organization ids to paste into a client's zoho_org_id. Needs only the
Zoho settings, not the database.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}

		zohoService, rdb, err := newZoho(cmd.Context(), cfg, nil)
		if err != nil {
			return err
		}
		if rdb != nil {
			defer rdb.Close()
		}

		token, err := zohoService.AccessToken(cmd.Context())
		if err != nil {
			return err
		}

		orgs, err := zohoService.Organizations(cmd.Context(), token)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ORGANIZATION ID\tNAME\tCURRENCY\tDEFAULT")
		for _, org := range orgs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", org.OrganizationID, org.Name, org.CurrencyCode, org.IsDefaultOrg)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(orgsCmd)
}
