package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clubbot/internal/domain"
	"clubbot/internal/domain/entities"
	"clubbot/internal/ports/output"
)

var _ output.EventRepository = (*EventRepository)(nil)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

// Create inserts the event with a full complement of seats.
func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	event.Remaining = event.Capacity
	err := r.pool.QueryRow(ctx,
		`INSERT INTO events (title, starts_at, capacity, remaining, location_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		event.Title, event.StartsAt.UTC(), event.Capacity, event.Remaining, event.LocationID,
	).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id int64) (*entities.Event, error) {
	var e entities.Event
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, starts_at, capacity, remaining, location_id, created_at
		 FROM events WHERE id = $1`,
		id,
	).Scan(&e.ID, &e.Title, &e.StartsAt, &e.Capacity, &e.Remaining, &e.LocationID, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event by id: %w", err)
	}
	return &e, nil
}

func (r *EventRepository) ListFuture(ctx context.Context, now time.Time) ([]entities.Event, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, starts_at, capacity, remaining, location_id, created_at
		 FROM events
		 WHERE starts_at > $1
		 ORDER BY starts_at ASC`,
		now.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("list future events: %w", err)
	}
	defer rows.Close()

	var out []entities.Event
	for rows.Next() {
		var e entities.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.StartsAt, &e.Capacity, &e.Remaining, &e.LocationID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EventRepository) SetLocation(ctx context.Context, eventID int64, locationID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE events SET location_id = $2 WHERE id = $1`,
		eventID, locationID,
	)
	if err != nil {
		return fmt.Errorf("set event location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// DeleteExpired removes every event that has started; requests, signups and
// jobs follow through the cascading foreign keys.
func (r *EventRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM events WHERE starts_at <= $1`,
		now.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("delete expired events: %w", err)
	}
	return tag.RowsAffected(), nil
}
