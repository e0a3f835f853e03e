package input

import (
	"context"
	"time"

	"github.com/google/uuid"

	"clubbot/internal/domain/entities"
)

// EventUseCase covers the operator-facing CRUD surface. Implementations must
// never mutate capacity outside the ledger.
type EventUseCase interface {
	CreateEvent(ctx context.Context, title string, startsAt time.Time, capacity int) (*entities.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
	SetLocation(ctx context.Context, eventID int64, locationID uuid.UUID) error
	ListFutureEvents(ctx context.Context) ([]entities.Event, error)
	GetEvent(ctx context.Context, id int64) (*entities.Event, error)

	CreateLocation(ctx context.Context, name, address, mapURL string) (*entities.Location, error)
	ListLocations(ctx context.Context) ([]entities.Location, error)
	DeleteLocation(ctx context.Context, id uuid.UUID) error

	SetBlocked(ctx context.Context, userID int64, blocked bool) error
	ListUsers(ctx context.Context) ([]entities.User, error)
	Broadcast(ctx context.Context, text string) (int, error)
}
