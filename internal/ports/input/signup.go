package input

import (
	"context"

	"clubbot/internal/domain/entities"
)

// SignupUseCase drives the per-(user, event) confirmation lifecycle.
type SignupUseCase interface {
	Cancel(ctx context.Context, eventID, userID int64, initiator string) error
	HandleConfirmResponse(ctx context.Context, eventID, userID int64, answer string) error
	Roster(ctx context.Context, eventID int64) ([]entities.Signup, error)
}
