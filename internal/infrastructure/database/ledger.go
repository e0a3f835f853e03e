package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clubbot/internal/ports/output"
)

var _ output.CapacityLedger = (*CapacityLedger)(nil)

// CapacityLedger is the only writer of events.remaining. Both operations
// lock the event row with SELECT ... FOR UPDATE so concurrent approvals on
// the same event are serialized: two transactions can never both observe
// remaining == 1 and both decrement.
type CapacityLedger struct {
	pool *pgxpool.Pool
}

func NewCapacityLedger(pool *pgxpool.Pool) *CapacityLedger {
	return &CapacityLedger{pool: pool}
}

// TryReserve atomically consumes one seat. It returns false without side
// effects when the event is missing or already full.
func (l *CapacityLedger) TryReserve(ctx context.Context, eventID int64) (bool, error) {
	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin reserve: %w", err)
	}
	defer tx.Rollback(ctx)

	var remaining int
	err = tx.QueryRow(ctx,
		`SELECT remaining FROM events WHERE id = $1 FOR UPDATE`,
		eventID,
	).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lock event row: %w", err)
	}
	if remaining <= 0 {
		return false, nil
	}

	if _, err := tx.Exec(ctx,
		`UPDATE events SET remaining = remaining - 1 WHERE id = $1`,
		eventID,
	); err != nil {
		return false, fmt.Errorf("decrement remaining: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit reserve: %w", err)
	}
	return true, nil
}

// Release returns one seat, clamped at capacity so a double release can
// never produce over-capacity bookkeeping.
func (l *CapacityLedger) Release(ctx context.Context, eventID int64) error {
	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin release: %w", err)
	}
	defer tx.Rollback(ctx)

	var remaining, capacity int
	err = tx.QueryRow(ctx,
		`SELECT remaining, capacity FROM events WHERE id = $1 FOR UPDATE`,
		eventID,
	).Scan(&remaining, &capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The event may have been swept already; nothing to return.
			return nil
		}
		return fmt.Errorf("lock event row: %w", err)
	}
	if remaining >= capacity {
		return nil
	}

	if _, err := tx.Exec(ctx,
		`UPDATE events SET remaining = remaining + 1 WHERE id = $1`,
		eventID,
	); err != nil {
		return fmt.Errorf("increment remaining: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit release: %w", err)
	}
	return nil
}
