package entities

import (
	"time"

	"github.com/google/uuid"
)

// Request is a user's ask to join an event, awaiting operator approval.
// It is a workflow artifact only: a request never grants a seat by itself.
type Request struct {
	ID        uuid.UUID
	UserID    int64
	EventID   int64
	Status    string
	CreatedAt time.Time
}
