package entities

import (
	"time"

	"github.com/google/uuid"
)

// Event is a scheduled club meeting with a fixed number of seats.
// Remaining is owned exclusively by the capacity ledger: nothing else may
// mutate it, so 0 <= Remaining <= Capacity holds at all times.
type Event struct {
	ID         int64
	Title      string
	StartsAt   time.Time
	Capacity   int
	Remaining  int
	LocationID uuid.NullUUID
	CreatedAt  time.Time
}

// Started reports whether the event's start time has passed.
func (e *Event) Started(now time.Time) bool {
	return !e.StartsAt.After(now)
}
