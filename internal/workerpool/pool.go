// Package workerpool runs queued solves on a bounded pool of
// goroutines and drives the periodic terminal-job cleanup sweep.
package workerpool

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Solver is the subset of jobmanager.Manager the pool depends on.
type Solver interface {
	Pending() <-chan string
	RunSolve(id string)
	Cleanup(olderThan time.Time) (int, error)
}

// Pool runs solves concurrently up to size, and periodically invokes
// Cleanup on the configured cron schedule.
type Pool struct {
	manager    Solver
	size       int64
	cleanupAge time.Duration
	cronSpec   string
	logger     *zap.Logger
	sem        *semaphore.Weighted
}

func New(manager Solver, size int, cleanupAge time.Duration, cronSpec string, logger *zap.Logger) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{
		manager:    manager,
		size:       int64(size),
		cleanupAge: cleanupAge,
		cronSpec:   cronSpec,
		logger:     logger,
		sem:        semaphore.NewWeighted(int64(size)),
	}
}

// Run drains the manager's pending queue and dequeues at most size
// concurrent solves, plus a cron-scheduled cleanup sweep, until ctx is
// cancelled. It blocks until every in-flight solve has returned.
func (p *Pool) Run(ctx context.Context) error {
	c := cron.New(cron.WithSeconds())
	_, err := c.AddFunc(p.cronSpec, func() {
		removed, err := p.manager.Cleanup(time.Now().Add(-p.cleanupAge))
		if err != nil {
			p.logger.Error("cleanup sweep failed", zap.Error(err))
			return
		}
		if removed > 0 {
			p.logger.Info("cleanup sweep removed terminal jobs", zap.Int("removed", removed))
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	defer c.Stop()

	g, gctx := errgroup.WithContext(ctx)
	for {
		select {
		case <-gctx.Done():
			return g.Wait()
		case id, ok := <-p.manager.Pending():
			if !ok {
				return g.Wait()
			}
			if err := p.sem.Acquire(gctx, 1); err != nil {
				return g.Wait()
			}
			jobID := id
			g.Go(func() error {
				defer p.sem.Release(1)
				p.manager.RunSolve(jobID)
				return nil
			})
		}
	}
}
