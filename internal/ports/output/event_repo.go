package output

import (
	"context"
	"time"

	"github.com/google/uuid"

	"clubbot/internal/domain/entities"
)

type EventRepository interface {
	Create(ctx context.Context, event *entities.Event) error
	FindByID(ctx context.Context, id int64) (*entities.Event, error)
	ListFuture(ctx context.Context, now time.Time) ([]entities.Event, error)
	SetLocation(ctx context.Context, eventID int64, locationID uuid.UUID) error
	Delete(ctx context.Context, id int64) error
	// DeleteExpired removes every event whose start time has passed,
	// cascading to its requests, signups and jobs. Returns the number of
	// events removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
