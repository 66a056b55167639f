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

var ErrEventNotFound = errors.New("event not found")

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

const eventColumns = `id, title, description, event_date, event_time, location, created_by, created_at`

func (r *EventRepository) Create(ctx context.Context, event models.Event) (models.Event, error) {
	const query = `
		INSERT INTO events (id, title, description, event_date, event_time, location, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING ` + eventColumns

	row := r.pool.QueryRow(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.EventDate,
		event.EventTime,
		event.Location,
		event.CreatedBy,
	)
	return scanEvent(row)
}

// List returns every event ordered by date, then creation time.
func (r *EventRepository) List(ctx context.Context) ([]models.Event, error) {
	const query = `SELECT ` + eventColumns + ` FROM events ORDER BY event_date, created_at, id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (models.Event, error) {
	return scanEvent(r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
}

func (r *EventRepository) Update(ctx context.Context, id string, patch models.EventPatch) (models.Event, error) {
	sets := make([]string, 0, 5)
	args := []any{id}
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", nullIfEmpty(*patch.Description))
	}
	if patch.EventDate != nil {
		add("event_date", *patch.EventDate)
	}
	if patch.EventTime != nil {
		add("event_time", nullIfEmpty(*patch.EventTime))
	}
	if patch.Location != nil {
		add("location", nullIfEmpty(*patch.Location))
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	query := `UPDATE events SET ` + strings.Join(sets, ", ") + ` WHERE id = $1 RETURNING ` + eventColumns
	return scanEvent(r.pool.QueryRow(ctx, query, args...))
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrEventNotFound
	}
	return nil
}

func scanEvent(row rowScanner) (models.Event, error) {
	var event models.Event
	if err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.EventDate,
		&event.EventTime,
		&event.Location,
		&event.CreatedBy,
		&event.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Event{}, ErrEventNotFound
		}
		return models.Event{}, err
	}
	return event, nil
}
