// Package scheduler runs periodic background jobs, currently only the
// inbox ingestion poll.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"helpdesk/internal/shared/logger"
)

// Job is a named unit of periodic work.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

type Manager struct {
	scheduler gocron.Scheduler
	log       logger.Interface
}

func NewManager(log logger.Interface) (*Manager, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	return &Manager{scheduler: s, log: log.Named("scheduler")}, nil
}

// Register schedules job to run every interval. Singleton mode keeps a slow
// run from overlapping the next one.
func (m *Manager) Register(job Job, interval time.Duration) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			defer cancel()

			start := time.Now()
			if err := job.Run(ctx); err != nil {
				m.log.Errorw("scheduled job failed", "job", job.Name(), "error", err)
				return
			}
			m.log.Infow("scheduled job finished", "job", job.Name(), "took", time.Since(start))
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName(job.Name()),
	)
	if err != nil {
		return fmt.Errorf("register job %s: %w", job.Name(), err)
	}
	return nil
}

func (m *Manager) Start() {
	m.scheduler.Start()
	m.log.Infow("scheduler started")
}

func (m *Manager) Stop() error {
	if err := m.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("shutdown scheduler: %w", err)
	}
	m.log.Infow("scheduler stopped")
	return nil
}
