package application

import (
	"context"
	"fmt"

	"clubbot/internal/domain"
	"clubbot/internal/domain/entities"
	"clubbot/internal/ports/output"
)

// SignupService drives the confirmed/cancelled lifecycle of a seat holder.
// Cancellation and a "no" check-in answer are the only two paths that give a
// seat back.
type SignupService struct {
	events     output.EventRepository
	signups    output.SignupRepository
	users      output.UserRepository
	ledger     output.CapacityLedger
	notifier   output.Notifier
	translator output.T
}

func NewSignupService(
	events output.EventRepository,
	signups output.SignupRepository,
	users output.UserRepository,
	ledger output.CapacityLedger,
	notifier output.Notifier,
	translator output.T,
) *SignupService {
	return &SignupService{
		events:     events,
		signups:    signups,
		users:      users,
		ledger:     ledger,
		notifier:   notifier,
		translator: translator,
	}
}

// Cancel releases the user's seat. It fails without side effects unless the
// event exists and the signup is currently confirmed, so a second cancel (or
// a cancel racing a "no" answer) can never release the seat twice.
func (s *SignupService) Cancel(ctx context.Context, eventID, userID int64, initiator string) error {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return err
	}

	flipped, err := s.signups.Cancel(ctx, userID, eventID)
	if err != nil {
		return fmt.Errorf("cancel signup: %w", err)
	}
	if !flipped {
		return domain.ErrSignupNotConfirmed
	}

	if err := s.ledger.Release(ctx, eventID); err != nil {
		return fmt.Errorf("release seat: %w", err)
	}

	label := eventLabel(event)
	s.notifier.Notify(ctx, userID, s.translator.T("", "cancelled", map[string]any{"Event": label}))
	if initiator == domain.ByOperator {
		s.notifier.LogToOperator(ctx, fmt.Sprintf("↩️ Запись пользователя id=%d на %s отменена", userID, label))
	}
	return nil
}

// HandleConfirmResponse records the pre-event check-in answer. "yes" only
// flips the confirm status; "no" additionally runs the cancel sequence and
// releases the seat.
func (s *SignupService) HandleConfirmResponse(ctx context.Context, eventID, userID int64, answer string) error {
	signup, err := s.signups.FindByUserAndEvent(ctx, userID, eventID)
	if err != nil {
		return err
	}
	if signup.Status != domain.SignupConfirmed {
		return domain.ErrSignupNotConfirmed
	}

	if answer == domain.ConfirmYes {
		if err := s.signups.SetConfirmStatus(ctx, userID, eventID, domain.ConfirmYes); err != nil {
			return fmt.Errorf("record answer: %w", err)
		}
		s.notifier.Notify(ctx, userID, s.translator.T("", "confirm_thanks_yes", nil))
		return nil
	}

	flipped, err := s.signups.Cancel(ctx, userID, eventID)
	if err != nil {
		return fmt.Errorf("cancel signup: %w", err)
	}
	if flipped {
		if err := s.ledger.Release(ctx, eventID); err != nil {
			return fmt.Errorf("release seat: %w", err)
		}
	}
	s.notifier.Notify(ctx, userID, s.translator.T("", "confirm_thanks_no", nil))
	s.notifier.LogToOperator(ctx, fmt.Sprintf("↩️ Пользователь id=%d не придёт на встречу (event=%d), место освобождено", userID, eventID))
	return nil
}

// Roster lists the signups for an event, oldest confirmation first.
func (s *SignupService) Roster(ctx context.Context, eventID int64) ([]entities.Signup, error) {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.signups.ListByEvent(ctx, eventID)
}
