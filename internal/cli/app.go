// Package cli wires configuration, logging, storage and the reconcile
// service together for the command line programs.
package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/eshaffer321/chargematch/internal/application/reconcile"
	"github.com/eshaffer321/chargematch/internal/domain/matcher"
	"github.com/eshaffer321/chargematch/internal/infrastructure/config"
	"github.com/eshaffer321/chargematch/internal/infrastructure/logging"
	"github.com/eshaffer321/chargematch/internal/infrastructure/storage"
)

// MatcherConfig converts the config file section to matcher limits
func MatcherConfig(cfg *config.Config) matcher.Config {
	return matcher.Config{
		MaxCharges:   cfg.Matcher.MaxCharges,
		MaxSolutions: cfg.Matcher.MaxSolutions,
		Workers:      cfg.Matcher.Workers,
	}
}

// OpenHistory opens the run-history database if it is enabled. A database
// that cannot be opened disables history with a warning; matching still works.
func OpenHistory(cfg *config.Config, logger *slog.Logger) (*storage.Storage, func()) {
	if !cfg.Storage.HistoryEnabled {
		return nil, func() {}
	}

	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Warn("run history disabled",
			"path", cfg.Storage.DatabasePath,
			"error", err)
		return nil, func() {}
	}

	return store, func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close history database", "error", err)
		}
	}
}

// RunMatch runs one interactive session with the given flags
// Logs and the verbose summary go to errOut; solutions go to out.
func RunMatch(ctx context.Context, flags *MatchFlags, in io.Reader, out, errOut io.Writer) error {
	cfg, err := LoadConfig(flags.ConfigPath)
	if err != nil {
		return err
	}
	flags.Apply(cfg)

	logger := logging.NewLoggerTo(errOut, cfg.Observability.Logging).With("system", "cli")

	store, closeStore := OpenHistory(cfg, logger)
	defer closeStore()

	var repo storage.Repository
	if store != nil {
		repo = store
	}

	session := &Session{
		In:      in,
		Out:     out,
		Service: reconcile.NewService(MatcherConfig(cfg), repo, logger),
	}
	if flags.Verbose {
		session.Summary = errOut
	}
	return session.Run(ctx)
}
