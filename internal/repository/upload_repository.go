package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/derrickgr2-cpu/familyconnest/internal/models"
)

var ErrUploadNotFound = errors.New("upload not found")

type UploadRepository struct {
	pool *pgxpool.Pool
}

func NewUploadRepository(pool *pgxpool.Pool) *UploadRepository {
	return &UploadRepository{pool: pool}
}

const uploadColumns = `id, user_id, object_key, url, content_type, size_bytes, status, created_at, updated_at`

func (r *UploadRepository) Create(ctx context.Context, upload models.Upload) error {
	const query = `
		INSERT INTO uploads (id, user_id, object_key, url, content_type, size_bytes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.pool.Exec(ctx, query,
		upload.ID,
		upload.UserID,
		upload.ObjectKey,
		upload.URL,
		upload.ContentType,
		upload.SizeBytes,
		upload.Status,
	)
	return err
}

func (r *UploadRepository) GetByID(ctx context.Context, id string) (models.Upload, error) {
	return scanUpload(r.pool.QueryRow(ctx, `SELECT `+uploadColumns+` FROM uploads WHERE id = $1`, id))
}

func (r *UploadRepository) UpdateStatus(ctx context.Context, id string, status models.UploadStatus) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE uploads SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUploadNotFound
	}
	return nil
}

func (r *UploadRepository) List(ctx context.Context, limit, offset int) ([]models.Upload, error) {
	const query = `SELECT ` + uploadColumns + ` FROM uploads ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset)
}

// ListOrphans returns uploads created before cutoff whose URL no user, member
// or photo refers to.
func (r *UploadRepository) ListOrphans(ctx context.Context, cutoff time.Time, limit int) ([]models.Upload, error) {
	const query = `
		SELECT ` + uploadColumns + `
		FROM uploads up
		WHERE up.created_at < $1
		  AND NOT EXISTS (SELECT 1 FROM users WHERE photo_url = up.url)
		  AND NOT EXISTS (SELECT 1 FROM members WHERE photo_url = up.url)
		  AND NOT EXISTS (SELECT 1 FROM photos WHERE photo_url = up.url)
		ORDER BY up.created_at
		LIMIT $2
	`
	return r.list(ctx, query, cutoff, limit)
}

func (r *UploadRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM uploads WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUploadNotFound
	}
	return nil
}

func (r *UploadRepository) list(ctx context.Context, query string, args ...any) ([]models.Upload, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	uploads := []models.Upload{}
	for rows.Next() {
		upload, err := scanUpload(rows)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, upload)
	}
	return uploads, rows.Err()
}

func scanUpload(row rowScanner) (models.Upload, error) {
	var upload models.Upload
	if err := row.Scan(
		&upload.ID,
		&upload.UserID,
		&upload.ObjectKey,
		&upload.URL,
		&upload.ContentType,
		&upload.SizeBytes,
		&upload.Status,
		&upload.CreatedAt,
		&upload.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Upload{}, ErrUploadNotFound
		}
		return models.Upload{}, err
	}
	return upload, nil
}
