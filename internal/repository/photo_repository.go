package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/derrickgr2-cpu/familyconnest/internal/models"
)

var ErrPhotoNotFound = errors.New("photo not found")

// PhotoRepository stores both member photos and personal album photos; each
// row belongs to exactly one of them.
type PhotoRepository struct {
	pool *pgxpool.Pool
}

func NewPhotoRepository(pool *pgxpool.Pool) *PhotoRepository {
	return &PhotoRepository{pool: pool}
}

const photoColumns = `id, member_id, user_id, photo_url, caption, added_at`

func (r *PhotoRepository) Create(ctx context.Context, photo models.Photo) (models.Photo, error) {
	const query = `
		INSERT INTO photos (id, member_id, user_id, photo_url, caption, added_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING ` + photoColumns

	row := r.pool.QueryRow(ctx, query, photo.ID, photo.MemberID, photo.UserID, photo.PhotoURL, photo.Caption)
	return scanPhoto(row)
}

func (r *PhotoRepository) ListByMember(ctx context.Context, memberID string) ([]models.Photo, error) {
	byMember, err := r.listByMembers(ctx, []string{memberID})
	if err != nil {
		return nil, err
	}
	if photos := byMember[memberID]; photos != nil {
		return photos, nil
	}
	return []models.Photo{}, nil
}

func (r *PhotoRepository) ListByUser(ctx context.Context, userID string) ([]models.Photo, error) {
	const query = `SELECT ` + photoColumns + ` FROM photos WHERE user_id = $1 ORDER BY added_at, id`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	photos := []models.Photo{}
	for rows.Next() {
		photo, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}
	return photos, rows.Err()
}

func (r *PhotoRepository) listByMembers(ctx context.Context, memberIDs []string) (map[string][]models.Photo, error) {
	const query = `SELECT ` + photoColumns + ` FROM photos WHERE member_id = ANY($1) ORDER BY added_at, id`
	rows, err := r.pool.Query(ctx, query, memberIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byMember := make(map[string][]models.Photo, len(memberIDs))
	for rows.Next() {
		photo, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		byMember[*photo.MemberID] = append(byMember[*photo.MemberID], photo)
	}
	return byMember, rows.Err()
}

func (r *PhotoRepository) DeleteFromMember(ctx context.Context, memberID string, photoID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM photos WHERE id = $1 AND member_id = $2`, photoID, memberID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrPhotoNotFound
	}
	return nil
}

func (r *PhotoRepository) DeleteFromUser(ctx context.Context, userID string, photoID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM photos WHERE id = $1 AND user_id = $2`, photoID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrPhotoNotFound
	}
	return nil
}

func scanPhoto(row rowScanner) (models.Photo, error) {
	var photo models.Photo
	if err := row.Scan(
		&photo.ID,
		&photo.MemberID,
		&photo.UserID,
		&photo.PhotoURL,
		&photo.Caption,
		&photo.AddedAt,
	); err != nil {
		return models.Photo{}, err
	}
	return photo, nil
}
