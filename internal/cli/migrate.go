package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"worktrack/internal/config"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			db, err := openDatabase(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeDatabase(db)

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "schema up to date (%s)\n", cfg.DbDriver)
			return nil
		},
	}
}
