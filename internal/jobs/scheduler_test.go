package jobs

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/derrickgr2-cpu/familyconnest/internal/queue"
)

type recordingQueue struct {
	mu    sync.Mutex
	tasks []queue.Task
}

func (q *recordingQueue) Enqueue(_ context.Context, task queue.Task) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, task)
	return nil
}

func TestEnqueueCleanup(t *testing.T) {
	q := &recordingQueue{}
	NewScheduler(q, "0 0 3 * * *", zerolog.Nop()).enqueueCleanup()

	if len(q.tasks) != 1 || q.tasks[0].Type != queue.TaskCleanup {
		t.Fatalf("expected one cleanup task, got %+v", q.tasks)
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s := NewScheduler(&recordingQueue{}, "every night", zerolog.Nop())
	if err := s.Start(); err == nil {
		t.Fatal("expected schedule parse error")
	}
}

func TestStartWithoutQueueIsNoop(t *testing.T) {
	s := NewScheduler(nil, "0 0 3 * * *", zerolog.Nop())
	if err := s.Start(); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	s.Stop()
}
