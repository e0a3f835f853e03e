package output

import (
	"context"

	"clubbot/internal/domain/entities"
)

type RequestRepository interface {
	Create(ctx context.Context, request *entities.Request) error
	FindPending(ctx context.Context, userID, eventID int64) (*entities.Request, error)
	// Resolve marks the most recent pending request for the pair with the
	// given terminal status. It reports whether a pending request existed.
	Resolve(ctx context.Context, userID, eventID int64, status string) (bool, error)
}
