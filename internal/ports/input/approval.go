package input

import (
	"context"

	"clubbot/internal/domain/entities"
)

// ApprovalUseCase gates seat consumption behind operator approval.
type ApprovalUseCase interface {
	// RequestSignup records a pending request and notifies the operator.
	// It returns the localized reply for the requesting user.
	RequestSignup(ctx context.Context, locale string, user *entities.User, eventID int64) (string, error)
	Approve(ctx context.Context, eventID, userID int64) error
	Decline(ctx context.Context, eventID, userID int64) error
}
