package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clubbot/internal/domain"
	"clubbot/internal/domain/entities"
	"clubbot/internal/ports/output"
)

var _ output.UserRepository = (*UserRepository)(nil)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Upsert records the user on first contact and refreshes the handle after.
// The blocked flag is only ever changed through SetBlocked.
func (r *UserRepository) Upsert(ctx context.Context, user *entities.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (id, handle)
		 VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET handle = EXCLUDED.handle
		 RETURNING blocked, first_seen_at`,
		user.ID, user.Handle,
	).Scan(&user.Blocked, &user.FirstSeenAt)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	var u entities.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, handle, blocked, first_seen_at FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Handle, &u.Blocked, &u.FirstSeenAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET blocked = $2 WHERE id = $1`,
		id, blocked,
	)
	if err != nil {
		return fmt.Errorf("set user blocked: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) ListAll(ctx context.Context) ([]entities.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, handle, blocked, first_seen_at FROM users ORDER BY first_seen_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []entities.User
	for rows.Next() {
		var u entities.User
		if err := rows.Scan(&u.ID, &u.Handle, &u.Blocked, &u.FirstSeenAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
