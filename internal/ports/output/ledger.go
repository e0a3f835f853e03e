package output

import "context"

// CapacityLedger is the only place event capacity may be mutated. Both
// operations run under a serializing transaction so concurrent approvals on
// the same event cannot both consume the last seat.
type CapacityLedger interface {
	// TryReserve atomically checks remaining > 0 and decrements it.
	// It returns false, without mutating anything, when the event is
	// missing or already full.
	TryReserve(ctx context.Context, eventID int64) (bool, error)
	// Release atomically increments remaining, clamped so it never
	// exceeds capacity. Releasing a missing or already-full event is a
	// no-op.
	Release(ctx context.Context, eventID int64) error
}
