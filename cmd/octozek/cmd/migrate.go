package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Simplici0/octozek/internal/migrations"
)

func newMigrateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply catalog migrations and seed default rates and gallery",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, _, stats, err := root.openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer database.Close()

			version, err := migrations.Version(database)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Database:       %s\n", root.dbPath)
			fmt.Fprintf(out, "Schema version: %d\n", version)
			fmt.Fprintf(out, "Seed:           %d inserted, %d updated\n", stats.Inserts, stats.Updates)
			return nil
		},
	}
}
