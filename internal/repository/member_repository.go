package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/derrickgr2-cpu/familyconnest/internal/models"
)

var ErrMemberNotFound = errors.New("member not found")

type MemberRepository struct {
	pool   *pgxpool.Pool
	photos *PhotoRepository
}

func NewMemberRepository(pool *pgxpool.Pool, photos *PhotoRepository) *MemberRepository {
	return &MemberRepository{pool: pool, photos: photos}
}

const memberColumns = `id, name, relationship, birth_date, bio, photo_url, parent_id, created_by, created_at`

func (r *MemberRepository) Create(ctx context.Context, member models.Member) (models.Member, error) {
	const query = `
		INSERT INTO members (id, name, relationship, birth_date, bio, photo_url, parent_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING ` + memberColumns

	row := r.pool.QueryRow(ctx, query,
		member.ID,
		member.Name,
		member.Relationship,
		member.BirthDate,
		member.Bio,
		member.PhotoURL,
		member.ParentID,
		member.CreatedBy,
	)
	created, err := scanMember(row)
	if err != nil {
		return models.Member{}, err
	}
	created.Photos = []models.Photo{}
	return created, nil
}

// ListByOwner returns the owner's members in insertion order with photos attached.
func (r *MemberRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Member, error) {
	const query = `SELECT ` + memberColumns + ` FROM members WHERE created_by = $1 ORDER BY created_at, id`
	return r.list(ctx, query, ownerID)
}

func (r *MemberRepository) ListAll(ctx context.Context) ([]models.Member, error) {
	const query = `SELECT ` + memberColumns + ` FROM members ORDER BY created_at, id`
	return r.list(ctx, query)
}

func (r *MemberRepository) list(ctx context.Context, query string, args ...any) ([]models.Member, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []models.Member{}
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachPhotos(ctx, members); err != nil {
		return nil, err
	}
	return members, nil
}

func (r *MemberRepository) GetByID(ctx context.Context, id string) (models.Member, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+memberColumns+` FROM members WHERE id = $1`, id)
	return r.withPhotos(ctx, row)
}

func (r *MemberRepository) GetOwned(ctx context.Context, id string, ownerID string) (models.Member, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+memberColumns+` FROM members WHERE id = $1 AND created_by = $2`, id, ownerID)
	return r.withPhotos(ctx, row)
}

func (r *MemberRepository) withPhotos(ctx context.Context, row pgx.Row) (models.Member, error) {
	member, err := scanMember(row)
	if err != nil {
		return models.Member{}, err
	}
	members := []models.Member{member}
	if err := r.attachPhotos(ctx, members); err != nil {
		return models.Member{}, err
	}
	return members[0], nil
}

// ParentIndex maps each of the owner's member ids to its parent id (empty when none).
func (r *MemberRepository) ParentIndex(ctx context.Context, ownerID string) (map[string]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, COALESCE(parent_id, '') FROM members WHERE created_by = $1`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	index := make(map[string]string)
	for rows.Next() {
		var id, parentID string
		if err := rows.Scan(&id, &parentID); err != nil {
			return nil, err
		}
		index[id] = parentID
	}
	return index, rows.Err()
}

func (r *MemberRepository) Update(ctx context.Context, id string, ownerID string, patch models.MemberPatch) (models.Member, error) {
	sets := make([]string, 0, 6)
	args := []any{id, ownerID}
	// Optional columns are cleared when patched with an empty string.
	add := func(column string, value *string, optional bool) {
		if value == nil {
			return
		}
		if optional {
			args = append(args, nullIfEmpty(*value))
		} else {
			args = append(args, *value)
		}
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("name", patch.Name, false)
	add("relationship", patch.Relationship, false)
	add("birth_date", patch.BirthDate, true)
	add("bio", patch.Bio, true)
	add("photo_url", patch.PhotoURL, true)
	add("parent_id", patch.ParentID, true)
	if len(sets) == 0 {
		return r.GetOwned(ctx, id, ownerID)
	}

	query := `UPDATE members SET ` + strings.Join(sets, ", ") +
		` WHERE id = $1 AND created_by = $2 RETURNING ` + memberColumns
	return r.withPhotos(ctx, r.pool.QueryRow(ctx, query, args...))
}

// Delete removes the member; photos cascade and children are detached by the schema.
func (r *MemberRepository) Delete(ctx context.Context, id string, ownerID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM members WHERE id = $1 AND created_by = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (r *MemberRepository) attachPhotos(ctx context.Context, members []models.Member) error {
	if len(members) == 0 {
		return nil
	}
	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}

	byMember, err := r.photos.listByMembers(ctx, ids)
	if err != nil {
		return fmt.Errorf("load member photos: %w", err)
	}
	for i := range members {
		photos := byMember[members[i].ID]
		if photos == nil {
			photos = []models.Photo{}
		}
		members[i].Photos = photos
	}
	return nil
}

func scanMember(row rowScanner) (models.Member, error) {
	var member models.Member
	if err := row.Scan(
		&member.ID,
		&member.Name,
		&member.Relationship,
		&member.BirthDate,
		&member.Bio,
		&member.PhotoURL,
		&member.ParentID,
		&member.CreatedBy,
		&member.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Member{}, ErrMemberNotFound
		}
		return models.Member{}, err
	}
	return member, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
