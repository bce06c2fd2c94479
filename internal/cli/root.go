// Package cli holds the worktrack command tree. Running the binary without a subcommand
// starts the HTTP API.
package cli

import (
	"context"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	dbadapter "worktrack/internal/adapter/db"
	"worktrack/internal/config"
	"worktrack/pkg/translator"
)

func NewRootCmd(version string) *cobra.Command {
	var (
		dev       bool
		undoGlobs func()
	)

	cmd := &cobra.Command{
		Use:          "worktrack",
		Short:        "Task lifecycle, submission review and performance scoring API",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(dev)
			if err != nil {
				return err
			}
			// Packages log through zap.L().
			undoGlobs = zap.ReplaceGlobals(logger)
			translator.InitTranslator(translator.Config{
				TranslationFolder:  os.Getenv("TRANSLATION_FOLDER"),
				SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
			})
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if err := zap.L().Sync(); err != nil {
				zap.L().Debug("failed to sync logger", zap.Error(err))
			}
			if undoGlobs != nil {
				undoGlobs()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), config.LoadConfig(), version)
		},
	}

	cmd.PersistentFlags().BoolVar(&dev, "dev", false, "Human readable debug logging")

	cmd.AddCommand(newServeCmd(version))
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newUserCmd())
	cmd.AddCommand(newTokenCmd())

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)
	cmd.SetVersionTemplate("{{.Version}}\n")
	if version == "" {
		version = "dev"
	}
	cmd.Version = version

	return cmd
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// openDatabase connects with the configured driver and applies pending migrations.
func openDatabase(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		return nil, err
	}
	if err := dbadapter.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func closeDatabase(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		zap.L().Warn("failed to close database connection", zap.Error(err))
	}
}
