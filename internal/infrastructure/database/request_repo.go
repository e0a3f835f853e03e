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

var _ output.RequestRepository = (*RequestRepository)(nil)

type RequestRepository struct {
	pool *pgxpool.Pool
}

func NewRequestRepository(pool *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{pool: pool}
}

func (r *RequestRepository) Create(ctx context.Context, request *entities.Request) error {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	request.Status = domain.RequestPending
	err := r.pool.QueryRow(ctx,
		`INSERT INTO requests (id, user_id, event_id, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		request.ID, request.UserID, request.EventID, request.Status,
	).Scan(&request.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert request: %w", err)
	}
	return nil
}

func (r *RequestRepository) FindPending(ctx context.Context, userID, eventID int64) (*entities.Request, error) {
	var req entities.Request
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, event_id, status, created_at
		 FROM requests
		 WHERE user_id = $1 AND event_id = $2 AND status = $3
		 ORDER BY created_at DESC
		 LIMIT 1`,
		userID, eventID, domain.RequestPending,
	).Scan(&req.ID, &req.UserID, &req.EventID, &req.Status, &req.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("find pending request: %w", err)
	}
	return &req, nil
}

// Resolve flips the most recent pending request for the pair to status.
// Resolving when no pending request exists is not an error: approval is
// allowed to proceed without request bookkeeping.
func (r *RequestRepository) Resolve(ctx context.Context, userID, eventID int64, status string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE requests SET status = $4
		 WHERE id = (
		     SELECT id FROM requests
		     WHERE user_id = $1 AND event_id = $2 AND status = $3
		     ORDER BY created_at DESC
		     LIMIT 1
		 )`,
		userID, eventID, domain.RequestPending, status,
	)
	if err != nil {
		return false, fmt.Errorf("resolve request: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
