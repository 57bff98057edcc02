// Package cronjob runs the nightly mirror resync.
package cronjob

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/belmobile/belmobile-backend/internal/store"
)

type Scheduler struct {
	log   *zap.Logger
	store *store.Store
	c     *cron.Cron
}

func NewScheduler(log *zap.Logger, st *store.Store) *Scheduler {
	return &Scheduler{log: log, store: st}
}

// Start schedules the resync job nightly at 03:00, bounding mirror drift if
// a snapshot listener silently died.
func (s *Scheduler) Start() {
	s.c = cron.New(cron.WithSeconds())

	_, err := s.c.AddFunc("0 0 3 * * *", func() {
		s.log.Info("nightly mirror resync started")
		s.store.Resync(context.Background())
	})
	if err != nil {
		s.log.Error("failed to create cron job", zap.Error(err))
		return
	}

	s.log.Info("cron scheduler started (nightly resync at 03:00)")
	s.c.Start()
}

func (s *Scheduler) Stop() {
	if s.c != nil {
		s.c.Stop()
	}
}
