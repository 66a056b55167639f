package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/derrickgr2-cpu/familyconnest/internal/queue"
)

type TaskQueue interface {
	Enqueue(ctx context.Context, task queue.Task) error
}

// Scheduler enqueues periodic maintenance for the media worker.
type Scheduler struct {
	cron            *cron.Cron
	queue           TaskQueue
	cleanupSchedule string
	log             zerolog.Logger
}

func NewScheduler(queue TaskQueue, cleanupSchedule string, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:            cron.New(cron.WithSeconds()),
		queue:           queue,
		cleanupSchedule: cleanupSchedule,
		log:             log,
	}
}

func (s *Scheduler) Start() error {
	if s.queue == nil || s.cleanupSchedule == "" {
		return nil
	}

	if _, err := s.cron.AddFunc(s.cleanupSchedule, s.enqueueCleanup); err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info().Str("schedule", s.cleanupSchedule).Msg("upload cleanup scheduled")
	return nil
}

// Stop waits up to five seconds for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("scheduler stop timed out")
	}
}

func (s *Scheduler) enqueueCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.queue.Enqueue(ctx, queue.Task{Type: queue.TaskCleanup}); err != nil {
		s.log.Error().Err(err).Msg("enqueue cleanup failed")
	}
}
