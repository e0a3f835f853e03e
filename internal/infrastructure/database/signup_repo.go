package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clubbot/internal/domain"
	"clubbot/internal/domain/entities"
	"clubbot/internal/ports/output"
)

var _ output.SignupRepository = (*SignupRepository)(nil)

type SignupRepository struct {
	pool *pgxpool.Pool
}

func NewSignupRepository(pool *pgxpool.Pool) *SignupRepository {
	return &SignupRepository{pool: pool}
}

// UpsertConfirmed creates the (user, event) signup or resets an existing row
// back to confirmed with an unknown check-in answer. A single upsert keeps
// "re-approval after cancellation" atomic.
func (r *SignupRepository) UpsertConfirmed(ctx context.Context, userID, eventID int64, at time.Time) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO signups (user_id, event_id, status, confirm_status, confirmed_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id, event_id) DO UPDATE
		 SET status = EXCLUDED.status,
		     confirm_status = EXCLUDED.confirm_status,
		     confirmed_at = EXCLUDED.confirmed_at`,
		userID, eventID, domain.SignupConfirmed, domain.ConfirmUnknown, at.UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert signup: %w", err)
	}
	return nil
}

func (r *SignupRepository) FindByUserAndEvent(ctx context.Context, userID, eventID int64) (*entities.Signup, error) {
	var s entities.Signup
	err := r.pool.QueryRow(ctx,
		`SELECT user_id, event_id, status, confirm_status, confirmed_at
		 FROM signups WHERE user_id = $1 AND event_id = $2`,
		userID, eventID,
	).Scan(&s.UserID, &s.EventID, &s.Status, &s.ConfirmStatus, &s.ConfirmedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSignupNotFound
		}
		return nil, fmt.Errorf("find signup: %w", err)
	}
	return &s, nil
}

// Cancel transitions confirmed -> cancelled. The status guard in the WHERE
// clause makes the transition single-shot: callers release the seat only
// when a row was actually flipped.
func (r *SignupRepository) Cancel(ctx context.Context, userID, eventID int64) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE signups SET status = $3, confirm_status = $4
		 WHERE user_id = $1 AND event_id = $2 AND status = $5`,
		userID, eventID, domain.SignupCancelled, domain.ConfirmNo, domain.SignupConfirmed,
	)
	if err != nil {
		return false, fmt.Errorf("cancel signup: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *SignupRepository) SetConfirmStatus(ctx context.Context, userID, eventID int64, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE signups SET confirm_status = $3 WHERE user_id = $1 AND event_id = $2`,
		userID, eventID, status,
	)
	if err != nil {
		return fmt.Errorf("set confirm status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSignupNotFound
	}
	return nil
}

func (r *SignupRepository) ListByEvent(ctx context.Context, eventID int64) ([]entities.Signup, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id, event_id, status, confirm_status, confirmed_at
		 FROM signups
		 WHERE event_id = $1
		 ORDER BY confirmed_at ASC`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("list signups: %w", err)
	}
	defer rows.Close()

	var out []entities.Signup
	for rows.Next() {
		var s entities.Signup
		if err := rows.Scan(&s.UserID, &s.EventID, &s.Status, &s.ConfirmStatus, &s.ConfirmedAt); err != nil {
			return nil, fmt.Errorf("scan signup: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
