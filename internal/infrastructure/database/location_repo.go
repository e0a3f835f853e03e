package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clubbot/internal/domain"
	"clubbot/internal/domain/entities"
	"clubbot/internal/ports/output"
)

var _ output.LocationRepository = (*LocationRepository)(nil)

type LocationRepository struct {
	pool *pgxpool.Pool
}

func NewLocationRepository(pool *pgxpool.Pool) *LocationRepository {
	return &LocationRepository{pool: pool}
}

func (r *LocationRepository) Create(ctx context.Context, location *entities.Location) error {
	if location.ID == uuid.Nil {
		location.ID = uuid.New()
	}
	if _, err := r.pool.Exec(ctx,
		`INSERT INTO locations (id, name, address, map_url) VALUES ($1, $2, $3, $4)`,
		location.ID, location.Name, location.Address, location.MapURL,
	); err != nil {
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

func (r *LocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Location, error) {
	var l entities.Location
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, address, map_url FROM locations WHERE id = $1`,
		id,
	).Scan(&l.ID, &l.Name, &l.Address, &l.MapURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLocationNotFound
		}
		return nil, fmt.Errorf("get location by id: %w", err)
	}
	return &l, nil
}

func (r *LocationRepository) ListAll(ctx context.Context) ([]entities.Location, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, address, map_url FROM locations ORDER BY name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var out []entities.Location
	for rows.Next() {
		var l entities.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Address, &l.MapURL); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *LocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLocationNotFound
	}
	return nil
}
