package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/textproto"
	"path"
	"time"

	"github.com/rs/zerolog"

	"github.com/derrickgr2-cpu/familyconnest/internal/config"
	"github.com/derrickgr2-cpu/familyconnest/internal/ids"
	"github.com/derrickgr2-cpu/familyconnest/internal/media/sniffer"
	"github.com/derrickgr2-cpu/familyconnest/internal/media/svg"
	"github.com/derrickgr2-cpu/familyconnest/internal/models"
	"github.com/derrickgr2-cpu/familyconnest/internal/queue"
)

var (
	ErrFileTooLarge = errors.New("file too large")
	ErrEmptyFile    = errors.New("empty file")
)

type ObjectStorage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (int64, error)
	PublicURL(key string) string
}

type TaskQueue interface {
	Enqueue(ctx context.Context, task queue.Task) error
}

type UploadInput struct {
	// User is nil for public (registration-time) uploads.
	User   *models.User
	File   io.Reader
	Header textproto.MIMEHeader
}

type UploadResult struct {
	Upload models.Upload
	URL    string
}

type UploadService struct {
	uploads UploadStore
	store   ObjectStorage
	queue   TaskQueue
	cfg     config.UploadsConfig
	log     zerolog.Logger
	now     func() time.Time
}

func NewUploadService(uploads UploadStore, store ObjectStorage, queue TaskQueue, cfg config.UploadsConfig, log zerolog.Logger) *UploadService {
	return &UploadService{
		uploads: uploads,
		store:   store,
		queue:   queue,
		cfg:     cfg,
		log:     log,
		now:     time.Now,
	}
}

func (s *UploadService) Upload(ctx context.Context, input UploadInput) (UploadResult, error) {
	if input.File == nil {
		return UploadResult{}, validationError("file is required")
	}

	limit := s.cfg.MaxBytes
	if limit <= 0 {
		limit = 10 << 20
	}
	data, err := io.ReadAll(io.LimitReader(input.File, limit+1))
	if err != nil {
		return UploadResult{}, fmt.Errorf("read file: %w", err)
	}
	if len(data) == 0 {
		return UploadResult{}, fmt.Errorf("%w: %w", ErrValidation, ErrEmptyFile)
	}
	if int64(len(data)) > limit {
		return UploadResult{}, fmt.Errorf("%w: %w", ErrValidation, ErrFileTooLarge)
	}

	head := data
	if len(head) > sniffer.HeadSize {
		head = head[:sniffer.HeadSize]
	}
	result, err := sniffer.DetectHead(head)
	if err != nil {
		return UploadResult{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if declared := sniffer.DeclaredMIME(input.Header); declared != "" && declared != result.MIME {
		return UploadResult{}, validationError("content type mismatch: declared %s, actual %s", declared, result.MIME)
	}

	if result.Type == sniffer.TypeSVG {
		clean, err := svg.Sanitize(data)
		if err != nil {
			return UploadResult{}, fmt.Errorf("%w: sanitize svg: %w", ErrValidation, err)
		}
		data = clean
	}

	uploadID := ids.New()
	objectKey := s.objectKey(uploadID, result.Ext())

	size, err := s.store.Put(ctx, objectKey, bytes.NewReader(data), int64(len(data)), result.MIME)
	if err != nil {
		return UploadResult{}, err
	}

	now := s.now().UTC()
	upload := models.Upload{
		ID:          uploadID,
		ObjectKey:   objectKey,
		URL:         s.store.PublicURL(objectKey),
		ContentType: result.MIME,
		SizeBytes:   size,
		Status:      models.UploadStatusProcessing,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.User != nil {
		upload.UserID = &input.User.ID
	}

	if err := s.uploads.Create(ctx, upload); err != nil {
		return UploadResult{}, fmt.Errorf("save upload: %w", err)
	}

	if s.queue != nil {
		if err := s.queue.Enqueue(ctx, queue.Task{Type: queue.TaskIngest, UploadID: upload.ID, ObjectKey: objectKey}); err != nil {
			s.log.Warn().Err(err).Str("upload_id", upload.ID).Msg("enqueue ingest failed")
		}
	}

	return UploadResult{Upload: upload, URL: upload.URL}, nil
}

// List pages through uploads for the admin view; page is 1-based.
func (s *UploadService) List(ctx context.Context, page, perPage int) ([]models.Upload, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return s.uploads.List(ctx, perPage, (page-1)*perPage)
}

func (s *UploadService) objectKey(id, ext string) string {
	return path.Join(s.now().UTC().Format("2006/01/02"), fmt.Sprintf("%s.%s", id, ext))
}
