package queue

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const (
	TaskIngest  = "ingest"
	TaskCleanup = "cleanup"
)

// Task is the flat payload written to the media stream. Stream values are
// strings, so every field is a string.
type Task struct {
	Type      string `json:"type"`
	UploadID  string `json:"uploadId,omitempty"`
	ObjectKey string `json:"objectKey,omitempty"`
}

func (t Task) values() map[string]any {
	values := map[string]any{"type": t.Type}
	if t.UploadID != "" {
		values["uploadId"] = t.UploadID
	}
	if t.ObjectKey != "" {
		values["objectKey"] = t.ObjectKey
	}
	return values
}

// TaskFromMessage reads a Task back from stream values.
func TaskFromMessage(msg redis.XMessage) Task {
	field := func(name string) string {
		v, _ := msg.Values[name].(string)
		return v
	}
	return Task{
		Type:      field("type"),
		UploadID:  field("uploadId"),
		ObjectKey: field("objectKey"),
	}
}

type Producer struct {
	client *redis.Client
	stream string
}

func NewProducer(client *redis.Client, stream string) *Producer {
	return &Producer{client: client, stream: stream}
}

// Enqueue is a no-op on a nil producer so the API can run without a worker.
func (p *Producer) Enqueue(ctx context.Context, task Task) error {
	if p == nil || p.client == nil {
		return nil
	}
	_, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: task.values(),
	}).Result()
	return err
}
