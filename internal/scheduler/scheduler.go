package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/altenburg/minierp/internal/service/search"
)

// Scheduler periodically re-synchronizes the inventory view with the
// remote store, scoped to whatever filter is currently active.
type Scheduler struct {
	cron       *cron.Cron
	controller *search.Controller
	spec       string
	logger     *zap.Logger
}

// New creates a scheduler for the given cron spec. An empty spec disables
// periodic re-sync entirely.
func New(spec string, controller *search.Controller, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:       cron.New(),
		controller: controller,
		spec:       spec,
		logger:     logger,
	}
}

// Start registers the re-sync job and starts the cron loop.
func (s *Scheduler) Start() {
	if s.spec == "" {
		s.logger.Info("periodic re-sync disabled")
		return
	}

	if _, err := s.cron.AddFunc(s.spec, s.resync); err != nil {
		s.logger.Error("failed to schedule re-sync", zap.String("spec", s.spec), zap.Error(err))
		return
	}

	s.logger.Info("periodic re-sync scheduled", zap.String("spec", s.spec))
	s.cron.Start()
}

// Stop stops the cron loop.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) resync() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.controller.Activate(ctx); err != nil {
		s.logger.Warn("periodic re-sync failed", zap.Error(err))
	}
}
