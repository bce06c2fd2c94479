package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"worktrack/internal/adapter/clock"
	dbadapter "worktrack/internal/adapter/db"
	httpadapter "worktrack/internal/adapter/http"
	"worktrack/internal/adapter/http/handlers"
	httpmiddleware "worktrack/internal/adapter/http/middleware"
	"worktrack/internal/adapter/notify"
	"worktrack/internal/app/escalation"
	"worktrack/internal/app/service"
	"worktrack/internal/config"
	"worktrack/internal/otel"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(version string) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			if port != "" {
				cfg.AppPort = port
			}
			return runServe(cmd.Context(), cfg, version)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "Listen port (default: APP_PORT or 8080)")
	return cmd
}

// App is the assembled service graph behind the HTTP router.
type App struct {
	Router  *gin.Engine
	Sweeper *escalation.Sweeper
	Hub     *notify.Hub
}

// NewApp wires repositories, services and handlers over db.
func NewApp(cfg *config.Config, db *sqlx.DB, logger *zap.Logger, metrics http.Handler) (*App, error) {
	systemClock := clock.System{}
	hub := notify.NewHub()
	notifier := notify.NewFanout(notify.NewLogNotifier(logger), hub)

	users := dbadapter.NewUserRepository(db)
	tasks := dbadapter.NewTaskRepository(db)
	submissions := dbadapter.NewSubmissionRepository(db)

	taskService := service.NewTaskService(tasks, users, notifier, systemClock).
		WithTransitionPolicy(service.ParticipantPolicy{})
	submissionService := service.NewSubmissionService(tasks, submissions, notifier, systemClock, cfg.Scoring)
	reviewService := service.NewReviewService(
		tasks,
		submissions,
		service.NewManagerOrAdminPolicy(users),
		notifier,
		systemClock,
		cfg.Scoring,
		cfg.ReviewRetryAttempts,
	)
	performanceService := service.NewPerformanceService(tasks, submissions, systemClock, cfg.Scoring)

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}
	r.Use(
		gin.Recovery(),
		httpmiddleware.RequestIDMiddleware(),
		httpmiddleware.GinZapMiddleware(logger),
	)
	httpadapter.RegisterRoutes(r, httpadapter.Handlers{
		Health:      handlers.NewHealthHandler(db, systemClock),
		Tasks:       handlers.NewTaskHandler(taskService, systemClock),
		Submissions: handlers.NewSubmissionHandler(submissionService, reviewService),
		Performance: handlers.NewPerformanceHandler(performanceService),
		Events:      hub.Stream,
		Metrics:     metrics,
	}, []byte(cfg.JwtSecret))

	app := &App{Router: r, Hub: hub}
	if cfg.EscalationSweepSchedule != "" {
		app.Sweeper = escalation.NewSweeper(submissionService, notifier, systemClock)
	}
	return app, nil
}

func runServe(ctx context.Context, cfg *config.Config, version string) error {
	logger := zap.L()
	if cfg.JwtSecret == "" {
		logger.Warn("JWT_SECRET is empty, every bearer token will be rejected")
	}
	if os.Getenv("APP_VERSION") == "" {
		_ = os.Setenv("APP_VERSION", version)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics, err := otel.InitMeterProvider(ctx, os.Getenv("APP_NAME"))
	if err != nil {
		return err
	}
	if err := otel.InitMetrics(ctx); err != nil {
		return err
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		logger.Error("failed to open database", zap.String("driver", cfg.DbDriver), zap.Error(err))
		return err
	}
	defer closeDatabase(db)

	app, err := NewApp(cfg, db, logger, metrics)
	if err != nil {
		return err
	}
	if app.Sweeper != nil {
		if err := app.Sweeper.Start(ctx, cfg.EscalationSweepSchedule); err != nil {
			return err
		}
		defer app.Sweeper.Stop()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv.RegisterOnShutdown(app.Hub.Close)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr), zap.String("driver", cfg.DbDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("could not start server", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
