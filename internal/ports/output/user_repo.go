package output

import (
	"context"

	"clubbot/internal/domain/entities"
)

type UserRepository interface {
	// Upsert inserts the user on first contact and refreshes the handle on
	// subsequent ones; the blocked flag is never touched here.
	Upsert(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id int64) (*entities.User, error)
	SetBlocked(ctx context.Context, id int64, blocked bool) error
	ListAll(ctx context.Context) ([]entities.User, error)
}
