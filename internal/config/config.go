// Package config translates environment variables into a single
// immutable Config value and builds the process logger.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/shiftforge/shiftcore/internal/constraint"
	"github.com/shiftforge/shiftcore/internal/shifterr"
	"github.com/shiftforge/shiftcore/internal/solver"
)

// StorageType selects which jobstore backend the job manager uses.
type StorageType string

const (
	StorageMemory     StorageType = "memory"
	StorageFilesystem StorageType = "filesystem"
	StorageBlob       StorageType = "blob"
)

// Config is the process-wide, immutable configuration loaded once at
// startup.
type Config struct {
	SolverTimeout  time.Duration
	SolverLogLevel solver.LogLevel
	StorageType    StorageType
	StorageDir     string
	WeeklyTargetFT int
	WeeklyTargetPT int
	CleanupCron    string
	WorkerPoolSize int
}

// Load reads an optional .env file (tried at the working directory and
// its two parents, the same fallback order the original server
// entrypoint used), then binds the documented environment variables
// through viper with explicit defaults, validating the result.
func Load() (*Config, error) {
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	v := viper.New()
	v.SetEnvPrefix("")
	v.AutomaticEnv()

	v.SetDefault("SOLVER_TIMEOUT_SECONDS", 120)
	v.SetDefault("SOLVER_LOG_LEVEL", "INFO")
	v.SetDefault("JOB_STORAGE_TYPE", "filesystem")
	v.SetDefault("JOB_STORAGE_DIR", "")
	v.SetDefault("WEEKLY_TARGET_FULL_TIME_MINUTES", 2400)
	v.SetDefault("WEEKLY_TARGET_PART_TIME_MINUTES", 1200)
	v.SetDefault("CLEANUP_CRON_SCHEDULE", "0 0 * * * *")
	v.SetDefault("WORKER_POOL_SIZE", 4)

	storageType := StorageType(v.GetString("JOB_STORAGE_TYPE"))
	switch storageType {
	case StorageMemory, StorageFilesystem, StorageBlob:
	default:
		return nil, shifterr.InvalidInput("invalid_input.storage_type", fmt.Sprintf("JOB_STORAGE_TYPE must be one of memory, filesystem, blob; got %q", storageType))
	}

	storageDir := v.GetString("JOB_STORAGE_DIR")
	if storageType != StorageMemory && storageDir == "" {
		return nil, shifterr.InvalidInput("invalid_input.storage_dir", "JOB_STORAGE_DIR must be set for a durable storage backend")
	}

	logLevel, err := parseLogLevel(v.GetString("SOLVER_LOG_LEVEL"))
	if err != nil {
		return nil, err
	}

	return &Config{
		SolverTimeout:  time.Duration(v.GetInt("SOLVER_TIMEOUT_SECONDS")) * time.Second,
		SolverLogLevel: logLevel,
		StorageType:    storageType,
		StorageDir:     storageDir,
		WeeklyTargetFT: v.GetInt("WEEKLY_TARGET_FULL_TIME_MINUTES"),
		WeeklyTargetPT: v.GetInt("WEEKLY_TARGET_PART_TIME_MINUTES"),
		CleanupCron:    v.GetString("CLEANUP_CRON_SCHEDULE"),
		WorkerPoolSize: v.GetInt("WORKER_POOL_SIZE"),
	}, nil
}

func parseLogLevel(s string) (solver.LogLevel, error) {
	switch s {
	case "INFO":
		return solver.LogInfo, nil
	case "DEBUG":
		return solver.LogDebug, nil
	default:
		return solver.LogInfo, shifterr.InvalidInput("invalid_input.log_level", fmt.Sprintf("SOLVER_LOG_LEVEL must be INFO or DEBUG; got %q", s))
	}
}

// ConstraintConfig derives the constraint catalog's weekly targets
// from the loaded config, keeping the tag names at their defaults.
func (c *Config) ConstraintConfig() constraint.Config {
	cfg := constraint.DefaultConfig()
	cfg.FullTimeWeeklyTargetMinutes = c.WeeklyTargetFT
	cfg.PartTimeWeeklyTargetMinutes = c.WeeklyTargetPT
	return cfg
}

// NewLogger builds a zap.Logger honoring the two-level verbosity
// scheme the solver's progress reporting uses: INFO gets the
// production encoder, DEBUG the development one.
func NewLogger(level solver.LogLevel) (*zap.Logger, error) {
	if level == solver.LogDebug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
