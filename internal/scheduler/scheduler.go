// Package scheduler runs the screening pass on a cron schedule for
// unattended daily operation.
package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/lzx-sdu/stock-picker-auto/internal/logging"
)

// Scheduler wraps a cron runner around a single screening task.
type Scheduler struct {
	cron *cron.Cron
	log  logging.Logger
}

func New(log logging.Logger) *Scheduler {
	return &Scheduler{cron: cron.New(cron.WithSeconds()), log: log}
}

// Register adds the screening task at the given 6-field cron spec.
func (s *Scheduler) Register(spec string, task func()) error {
	if _, err := s.cron.AddFunc(spec, task); err != nil {
		return fmt.Errorf("register screening task: %w", err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Infof("scheduler started")
}

// Stop stops the cron loop; a task already in flight finishes on its own.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Infof("scheduler stopped")
}
