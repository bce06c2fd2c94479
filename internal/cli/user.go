package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	dbadapter "worktrack/internal/adapter/db"
	"worktrack/internal/config"
	"worktrack/internal/core/domain"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage the user directory",
	}
	cmd.AddCommand(newUserAddCmd())
	return cmd
}

func newUserAddCmd() *cobra.Command {
	var (
		name        string
		role        string
		managerID   uint64
		workspaceID uint64
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a user to the directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := buildUser(name, role, managerID, workspaceID)
			if err != nil {
				return err
			}

			db, err := openDatabase(cmd.Context(), config.LoadConfig())
			if err != nil {
				return err
			}
			defer closeDatabase(db)

			created, err := dbadapter.NewUserRepository(db).Create(cmd.Context(), user)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created user %d (%s, %s)\n", created.ID, created.Name, created.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleEmployee), "admin, manager or employee")
	cmd.Flags().Uint64Var(&managerID, "manager", 0, "Direct manager id")
	cmd.Flags().Uint64Var(&workspaceID, "workspace", 0, "Workspace id")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func buildUser(name, role string, managerID, workspaceID uint64) (domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.User{}, fmt.Errorf("--name is required")
	}
	parsed, err := parseRole(role)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{Name: name, Role: parsed, WorkspaceID: workspaceID}
	if managerID != 0 {
		user.ManagerID = &managerID
	}
	return user, nil
}

func parseRole(raw string) (domain.Role, error) {
	role := domain.Role(strings.ToLower(strings.TrimSpace(raw)))
	switch role {
	case domain.RoleAdmin, domain.RoleManager, domain.RoleEmployee:
		return role, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}
