package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/shiftforge/shiftcore/internal/config"
	"github.com/shiftforge/shiftcore/internal/jobmanager"
	"github.com/shiftforge/shiftcore/internal/jobstore"
	"github.com/shiftforge/shiftcore/internal/workerpool"
)

// cmd/shiftcore is a minimal process entrypoint: it bootstraps config,
// constructs the job manager, starts the worker pool, and blocks until
// asked to shut down. It is deliberately not a CLI product surface —
// no subcommands, no flags beyond what config reads from the
// environment.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("configuration error: %v", err)
		os.Exit(2)
	}

	logger, err := config.NewLogger(cfg.SolverLogLevel)
	if err != nil {
		log.Printf("logger initialization failed: %v", err)
		os.Exit(2)
	}
	defer logger.Sync()

	store, err := buildStore(cfg)
	if err != nil {
		logger.Error("could not build job store", zap.Error(err))
		os.Exit(2)
	}

	manager := jobmanager.NewManager(store, cfg.ConstraintConfig(), cfg.SolverTimeout, cfg.SolverLogLevel, logger)

	if err := manager.RehydrateOnStartup(); err != nil {
		logger.Error("startup rehydration failed", zap.Error(err))
		os.Exit(2)
	}

	pool := workerpool.New(manager, cfg.WorkerPoolSize, 7*24*time.Hour, cronSpecFor(cfg.CleanupCron), logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("shiftcore starting",
		zap.String("storage_type", string(cfg.StorageType)),
		zap.Int("worker_pool_size", cfg.WorkerPoolSize),
		zap.Duration("solver_timeout", cfg.SolverTimeout),
	)

	if err := pool.Run(ctx); err != nil {
		logger.Error("worker pool exited with error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("shiftcore shut down cleanly")
}

func buildStore(cfg *config.Config) (jobmanager.Store, error) {
	switch cfg.StorageType {
	case config.StorageMemory:
		return jobstore.NewMemoryStore(), nil
	case config.StorageFilesystem:
		return jobstore.NewFilesystemStore(cfg.StorageDir)
	case config.StorageBlob:
		return jobstore.NewInMemoryBlobStore(), nil
	default:
		return jobstore.NewMemoryStore(), nil
	}
}

func cronSpecFor(spec string) string {
	if spec == "" {
		return "0 0 * * * *"
	}
	return spec
}
