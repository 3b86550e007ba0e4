package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eshaffer321/chargematch/internal/api"
	"github.com/eshaffer321/chargematch/internal/application/reconcile"
	"github.com/eshaffer321/chargematch/internal/infrastructure/config"
	"github.com/eshaffer321/chargematch/internal/infrastructure/logging"
	"github.com/eshaffer321/chargematch/internal/infrastructure/storage"
)

// RunServe runs the API server until SIGINT or SIGTERM.
func RunServe(cfg *config.Config, flags *ServeFlags) error {
	flags.Apply(cfg)

	// Set up logging
	logger := logging.NewLoggerWithSystem(cfg.Observability.Logging, "api")

	// Initialize storage
	store, closeStore := OpenHistory(cfg, logger)
	defer closeStore()

	var repo storage.Repository
	if store != nil {
		repo = store
	}

	service := reconcile.NewService(MatcherConfig(cfg), repo, logger)

	apiCfg := api.Config{
		Port:           cfg.API.Port,
		AllowedOrigins: cfg.API.AllowedOrigins,
	}

	// Create and start server
	server := api.NewServer(apiCfg, repo, service, logger)

	// Handle graceful shutdown
	done := make(chan struct{})
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	go func() {
		<-quit
		logger.Info("received shutdown signal")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server shutdown error", slog.Any("error", err))
		}
		close(done)
	}()

	// Start server (blocks until shutdown)
	if err := server.Start(); err != nil {
		return err
	}

	<-done
	logger.Info("server stopped")
	return nil
}
