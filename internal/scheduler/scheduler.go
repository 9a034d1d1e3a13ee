// Package scheduler runs the background market revaluation job on a cron
// schedule.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"pesafolio/internal/logger"
	"pesafolio/internal/services"
)

// Scheduler manages the periodic holding revaluation task.
type Scheduler struct {
	cron           *cron.Cron
	holdingService services.HoldingServicer
	ctx            context.Context
}

// New creates a Scheduler that revalues holdings via the given service.
func New(ctx context.Context, holdingService services.HoldingServicer) *Scheduler {
	return &Scheduler{
		cron:           cron.New(),
		holdingService: holdingService,
		ctx:            ctx,
	}
}

// Register adds the revaluation job on the given cron spec, e.g.
// "@every 5m" or "0 */10 * * *".
func (s *Scheduler) Register(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Get().Infow("price refresh scheduler started")
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.Get().Infow("price refresh scheduler stopped")
}

func (s *Scheduler) refreshTask() {
	updated, err := s.holdingService.RefreshMarketValues(s.ctx)
	if err != nil {
		logger.Get().Warnw("market revaluation failed", "error", err)
		return
	}
	if updated > 0 {
		logger.Get().Infow("holdings revalued", "updated", updated)
	}
}
