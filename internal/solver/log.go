package solver

import (
	"time"

	"go.uber.org/zap"

	"github.com/shiftforge/shiftcore/internal/domain"
)

// progressLogger emits solve progress: at INFO, at
// most one line per improvement and one final summary line; at DEBUG,
// additionally per-phase transitions and a per-second heartbeat.
type progressLogger struct {
	logger        *zap.Logger
	level         LogLevel
	start         time.Time
	lastHeartbeat time.Time
}

func newProgressLogger(logger *zap.Logger, level LogLevel, start time.Time) *progressLogger {
	return &progressLogger{logger: logger, level: level, start: start, lastHeartbeat: start}
}

func (p *progressLogger) phase(name string) {
	if p.level == LogDebug {
		p.logger.Debug("solver phase", zap.String("phase", name), zap.Int64("elapsed_ms", elapsedMS(p.start)))
	}
}

func (p *progressLogger) improvement(score domain.Score) {
	p.logger.Info("solver improvement",
		zap.Int64("elapsed_ms", elapsedMS(p.start)),
		zap.Int("hard", score.Hard),
		zap.Int("medium", score.Medium),
		zap.Int("soft", score.Soft),
	)
}

func (p *progressLogger) maybeHeartbeat() {
	if p.level != LogDebug {
		return
	}
	if time.Since(p.lastHeartbeat) >= time.Second {
		p.lastHeartbeat = time.Now()
		p.logger.Debug("solver heartbeat", zap.Int64("elapsed_ms", elapsedMS(p.start)))
	}
}

func (p *progressLogger) summary(outcome *Outcome) {
	p.logger.Info("solver finished",
		zap.Int64("elapsed_ms", elapsedMS(p.start)),
		zap.String("terminated_by", string(outcome.TerminatedBy)),
		zap.Int("hard", outcome.BestScore.Hard),
		zap.Int("medium", outcome.BestScore.Medium),
		zap.Int("soft", outcome.BestScore.Soft),
		zap.Int("improvements", len(outcome.Improvements)),
	)
}
