package output

import (
	"context"
	"time"

	"clubbot/internal/domain/entities"
)

type SignupRepository interface {
	// UpsertConfirmed creates or resets the (user, event) signup to
	// confirmed with an unknown check-in answer.
	UpsertConfirmed(ctx context.Context, userID, eventID int64, at time.Time) error
	FindByUserAndEvent(ctx context.Context, userID, eventID int64) (*entities.Signup, error)
	// Cancel sets status=cancelled and confirm_status=no, but only when
	// the signup is currently confirmed. It reports whether a row was
	// actually transitioned, so a seat is never released twice.
	Cancel(ctx context.Context, userID, eventID int64) (bool, error)
	SetConfirmStatus(ctx context.Context, userID, eventID int64, status string) error
	ListByEvent(ctx context.Context, eventID int64) ([]entities.Signup, error)
}
