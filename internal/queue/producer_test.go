package queue

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
)

func TestTaskValuesOmitEmptyFields(t *testing.T) {
	values := Task{Type: TaskCleanup}.values()
	if len(values) != 1 || values["type"] != TaskCleanup {
		t.Fatalf("expected only type, got %v", values)
	}

	values = Task{Type: TaskIngest, UploadID: "u1", ObjectKey: "2024/07/04/u1.png"}.values()
	if values["uploadId"] != "u1" || values["objectKey"] != "2024/07/04/u1.png" {
		t.Fatalf("unexpected values %v", values)
	}
}

func TestNilProducerEnqueueIsNoop(t *testing.T) {
	var p *Producer
	if err := p.Enqueue(context.Background(), Task{Type: TaskIngest}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestTaskFromMessage(t *testing.T) {
	task := TaskFromMessage(redis.XMessage{
		ID:     "1-0",
		Values: map[string]any{"type": TaskIngest, "uploadId": "u1", "objectKey": "k", "extra": 3},
	})
	if task != (Task{Type: TaskIngest, UploadID: "u1", ObjectKey: "k"}) {
		t.Fatalf("unexpected task %+v", task)
	}
}
