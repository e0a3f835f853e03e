package output

import (
	"context"

	"github.com/google/uuid"

	"clubbot/internal/domain/entities"
)

type LocationRepository interface {
	Create(ctx context.Context, location *entities.Location) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Location, error)
	ListAll(ctx context.Context) ([]entities.Location, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
