package solver

import "time"

// LogLevel is solve's two-level logging verbosity scheme.
type LogLevel string

const (
	LogInfo  LogLevel = "INFO"
	LogDebug LogLevel = "DEBUG"
)

// Config is solve's public contract input.
type Config struct {
	TimeBudget time.Duration
	LogLevel   LogLevel
	// Seed is optional; nil means "derive a deterministic default from
	// schedule contents".
	Seed *int64
}

// pollInterval is how long the search loop waits between cancel-token
// and deadline checks when no unpinned shift is left to move; it keeps
// cancellation observed well within 100ms. Otherwise the loop checks
// both on every iteration.
const pollInterval = 50 * time.Millisecond
