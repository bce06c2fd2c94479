package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	httpmiddleware "worktrack/internal/adapter/http/middleware"
	"worktrack/internal/config"
	"worktrack/internal/core/domain"
)

func newTokenCmd() *cobra.Command {
	var (
		userID uint64
		role   string
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a bearer token for local testing with JWT_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			if cfg.JwtSecret == "" {
				return fmt.Errorf("JWT_SECRET is not set")
			}
			if userID == 0 {
				return fmt.Errorf("--user is required")
			}
			parsed, err := parseRole(role)
			if err != nil {
				return err
			}

			token, err := httpmiddleware.IssueToken([]byte(cfg.JwtSecret), domain.Actor{UserID: userID, Role: parsed}, ttl)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&userID, "user", 0, "User id carried by the token")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleEmployee), "admin, manager or employee")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	return cmd
}
