package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"helpdesk/internal/application/inbound"
	"helpdesk/internal/infrastructure/config"
	"helpdesk/internal/infrastructure/database"
	"helpdesk/internal/infrastructure/email"
	"helpdesk/internal/infrastructure/ratelimit"
	"helpdesk/internal/infrastructure/repository"
	"helpdesk/internal/infrastructure/scheduler"
	httpRouter "helpdesk/internal/interfaces/http"
	"helpdesk/internal/shared/logger"
)

var (
	env      string
	noIngest bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the helpdesk HTTP server with the background ingestion scheduler and mail dispatcher.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&noIngest, "no-ingest", false, "Disable the background inbox polling job")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	ginMode := mapEnvToGinMode(env)

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = ginMode

	if err := logger.Init(&cfg.Logger, ginMode == "debug"); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("starting server", "environment", env)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
	}

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer database.Close()

	log := logger.NewLogger()

	mailLogRepo := repository.NewMailLogRepository(database.Get())
	dispatcher := email.NewDispatcher(email.NewService(&cfg.Email), mailLogRepo, &cfg.Email, log)
	dispatcher.Start()
	defer dispatcher.Stop()

	limiter := ratelimit.NewLimiter(&cfg.Redis, log)
	defer limiter.Close()

	router := httpRouter.NewRouter(database.Get(), cfg, dispatcher, limiter, log)
	router.SetupRoutes()

	if !noIngest {
		sched, err := scheduler.NewManager(log)
		if err != nil {
			logger.Fatal("failed to create scheduler", "error", err)
		}
		interval := time.Duration(cfg.Ingest.PollIntervalMin) * time.Minute
		if interval <= 0 {
			interval = 5 * time.Minute
		}
		job := &inboxJob{processInbox: router.ProcessInboxUseCase()}
		if err := sched.Register(job, interval); err != nil {
			logger.Fatal("failed to register ingestion job", "error", err)
		}
		sched.Start()
		defer sched.Stop()
		logger.Info("inbox polling scheduled", "interval", interval)
	}

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "address", cfg.Server.GetAddr(), "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}

	logger.Info("server exited gracefully")
	return nil
}

// inboxJob adapts the ingestion batch runner to the scheduler job contract.
type inboxJob struct {
	processInbox *inbound.ProcessInboxUseCase
}

func (j *inboxJob) Name() string { return "inbox-poll" }

func (j *inboxJob) Run(ctx context.Context) error {
	_, err := j.processInbox.Execute(ctx)
	return err
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
