// Package scheduler runs the recurring sync job on a cron spec.
package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/seasalt-intel/webintel/internal/domain"
	"github.com/seasalt-intel/webintel/internal/logger"
)

// Runner is the job the scheduler fires.
type Runner interface {
	Run(ctx context.Context, fast bool) (*domain.SyncSummary, error)
}

// Scheduler fires full sync runs on a cron schedule.
type Scheduler struct {
	cron   *cron.Cron
	runner Runner
	log    logger.Interface
}

// New builds a scheduler. Overlapping runs are skipped rather than queued.
func New(runner Runner, log logger.Interface) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		runner: runner,
		log:    log.WithComponent("scheduler"),
	}
}

// Schedule registers the sync job under spec (standard 5-field cron).
func (s *Scheduler) Schedule(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		summary, err := s.runner.Run(context.Background(), false)
		if err != nil {
			s.log.Error("scheduled sync failed", "error", err)
			return
		}
		s.log.Info("scheduled sync finished",
			"status", summary.Status,
			"reachable", summary.ReachableSites)
	})
	if err != nil {
		return err
	}
	s.log.Info("sync scheduled", "spec", spec)
	return nil
}

// Start begins firing jobs.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop halts scheduling and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
