package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/derrickgr2-cpu/familyconnest/internal/media/sniffer"
	"github.com/derrickgr2-cpu/familyconnest/internal/models"
	"github.com/derrickgr2-cpu/familyconnest/internal/queue"
	"github.com/derrickgr2-cpu/familyconnest/internal/repository"
	"github.com/derrickgr2-cpu/familyconnest/internal/storage"
)

// cleanupBatch bounds how many orphans one cleanup task removes.
const cleanupBatch = 200

type UploadStore interface {
	GetByID(ctx context.Context, id string) (models.Upload, error)
	UpdateStatus(ctx context.Context, id string, status models.UploadStatus) error
	ListOrphans(ctx context.Context, cutoff time.Time, limit int) ([]models.Upload, error)
	Delete(ctx context.Context, id string) error
}

type ObjectStore interface {
	Head(ctx context.Context, key string, n int64) ([]byte, error)
	Remove(ctx context.Context, key string) error
}

type Processor struct {
	uploads   UploadStore
	objects   ObjectStore
	orphanTTL time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

func NewProcessor(uploads UploadStore, objects ObjectStore, orphanTTL time.Duration, logger zerolog.Logger) *Processor {
	return &Processor{
		uploads:   uploads,
		objects:   objects,
		orphanTTL: orphanTTL,
		logger:    logger,
		now:       time.Now,
	}
}

func (p *Processor) Handle(ctx context.Context, msg redis.XMessage) error {
	task := queue.TaskFromMessage(msg)

	switch task.Type {
	case queue.TaskIngest:
		return p.handleIngest(ctx, task)
	case queue.TaskCleanup:
		return p.handleCleanup(ctx)
	default:
		p.logger.Warn().Str("type", task.Type).Str("message_id", msg.ID).Msg("unknown task type")
		return nil
	}
}

// handleIngest re-sniffs the stored object and settles the upload status.
// Objects that are gone or not images are rejected and removed.
func (p *Processor) handleIngest(ctx context.Context, task queue.Task) error {
	upload, err := p.uploads.GetByID(ctx, task.UploadID)
	if errors.Is(err, repository.ErrUploadNotFound) {
		p.logger.Warn().Str("upload_id", task.UploadID).Msg("ingest for unknown upload")
		return nil
	}
	if err != nil {
		return fmt.Errorf("load upload: %w", err)
	}
	if upload.Status != models.UploadStatusProcessing {
		return nil
	}

	head, err := p.objects.Head(ctx, upload.ObjectKey, sniffer.HeadSize)
	if err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
		return fmt.Errorf("read object head: %w", err)
	}

	status := models.UploadStatusReady
	if result, sniffErr := sniffer.DetectHead(head); err != nil || sniffErr != nil || result.MIME != upload.ContentType {
		status = models.UploadStatusRejected
	}

	if status == models.UploadStatusRejected {
		if err := p.objects.Remove(ctx, upload.ObjectKey); err != nil {
			return fmt.Errorf("remove rejected object: %w", err)
		}
	}
	if err := p.uploads.UpdateStatus(ctx, upload.ID, status); err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	p.logger.Info().
		Str("upload_id", upload.ID).
		Str("object_key", upload.ObjectKey).
		Str("status", string(status)).
		Msg("upload ingested")
	return nil
}

// handleCleanup deletes the object before the record so a failed removal is
// retried on the next run.
func (p *Processor) handleCleanup(ctx context.Context) error {
	cutoff := p.now().Add(-p.orphanTTL)
	orphans, err := p.uploads.ListOrphans(ctx, cutoff, cleanupBatch)
	if err != nil {
		return fmt.Errorf("list orphans: %w", err)
	}

	removed := 0
	for _, upload := range orphans {
		if err := p.objects.Remove(ctx, upload.ObjectKey); err != nil {
			p.logger.Error().Err(err).Str("upload_id", upload.ID).Msg("remove orphan object failed")
			continue
		}
		if err := p.uploads.Delete(ctx, upload.ID); err != nil && !errors.Is(err, repository.ErrUploadNotFound) {
			p.logger.Error().Err(err).Str("upload_id", upload.ID).Msg("delete orphan record failed")
			continue
		}
		removed++
	}

	p.logger.Info().Int("found", len(orphans)).Int("removed", removed).Time("cutoff", cutoff).Msg("orphan cleanup finished")
	return nil
}
