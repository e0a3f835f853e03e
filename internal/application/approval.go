package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"clubbot/internal/domain"
	"clubbot/internal/domain/entities"
	"clubbot/internal/ports/output"
)

// Notification lead times relative to the event start. Run times in the past
// are clamped to "now" so a late approval still produces a job that fires on
// the next poll instead of being silently skipped.
const (
	confirmLead  = 24 * time.Hour
	reminderLead = time.Hour
)

// ApprovalService gates seat consumption behind operator approval: a request
// only becomes a signup once the operator approves it and the ledger hands
// out a seat.
type ApprovalService struct {
	events     output.EventRepository
	requests   output.RequestRepository
	signups    output.SignupRepository
	jobs       output.JobRepository
	users      output.UserRepository
	ledger     output.CapacityLedger
	notifier   output.Notifier
	translator output.T
	now        func() time.Time
}

func NewApprovalService(
	events output.EventRepository,
	requests output.RequestRepository,
	signups output.SignupRepository,
	jobs output.JobRepository,
	users output.UserRepository,
	ledger output.CapacityLedger,
	notifier output.Notifier,
	translator output.T,
) *ApprovalService {
	return &ApprovalService{
		events:     events,
		requests:   requests,
		signups:    signups,
		jobs:       jobs,
		users:      users,
		ledger:     ledger,
		notifier:   notifier,
		translator: translator,
		now:        time.Now,
	}
}

// RequestSignup records a pending request for (user, event) and pings the
// operator with approve/decline buttons. The returned string is the
// localized reply for the requesting user, set for rejections as well.
func (s *ApprovalService) RequestSignup(ctx context.Context, locale string, user *entities.User, eventID int64) (string, error) {
	if err := s.users.Upsert(ctx, user); err != nil {
		return "", fmt.Errorf("upsert user: %w", err)
	}
	if user.Blocked {
		return s.translator.T(locale, "request_unavailable", nil), domain.ErrUserBlocked
	}

	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return s.translator.T(locale, "request_unavailable", nil), domain.ErrEventNotFound
		}
		return "", err
	}
	if event.Started(s.now()) {
		return s.translator.T(locale, "request_unavailable", nil), domain.ErrEventStarted
	}
	if event.Remaining <= 0 {
		return s.translator.T(locale, "request_no_seats", nil), domain.ErrNoSeats
	}

	if signup, err := s.signups.FindByUserAndEvent(ctx, user.ID, eventID); err == nil && signup.Status == domain.SignupConfirmed {
		return s.translator.T(locale, "request_already_signed_up", nil), domain.ErrAlreadySignedUp
	}
	if _, err := s.requests.FindPending(ctx, user.ID, eventID); err == nil {
		return s.translator.T(locale, "request_pending", nil), domain.ErrRequestPending
	}

	request := &entities.Request{
		ID:      uuid.New(),
		UserID:  user.ID,
		EventID: eventID,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	s.notifier.LogToOperator(ctx,
		fmt.Sprintf("‼️ %s (id=%d) хочет записаться на %s", userLabel(user), user.ID, eventLabel(event)),
		output.Choice{Label: s.translator.T("", "btn_approve", nil), Data: fmt.Sprintf("approve:%d:%d", eventID, user.ID)},
		output.Choice{Label: s.translator.T("", "btn_decline", nil), Data: fmt.Sprintf("decline:%d:%d", eventID, user.ID)},
	)

	return s.translator.T(locale, "request_sent", nil), nil
}

// Approve consumes a seat for (event, user), upserts the confirmed signup
// and plans the confirm/reminder jobs. A missing pending request is not an
// error: the seat is still handed out and the bookkeeping simply has nothing
// to update.
func (s *ApprovalService) Approve(ctx context.Context, eventID, userID int64) error {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return err
	}

	reserved, err := s.ledger.TryReserve(ctx, eventID)
	if err != nil {
		return fmt.Errorf("reserve seat: %w", err)
	}
	if !reserved {
		return domain.ErrNoSeats
	}

	if _, err := s.requests.Resolve(ctx, userID, eventID, domain.RequestApproved); err != nil {
		return fmt.Errorf("resolve request: %w", err)
	}

	now := s.now()
	if err := s.signups.UpsertConfirmed(ctx, userID, eventID, now); err != nil {
		return fmt.Errorf("upsert signup: %w", err)
	}

	confirmAt, remindAt := notifyTimes(event.StartsAt, now)
	for _, job := range []entities.Job{
		{Kind: domain.JobConfirm, UserID: userID, EventID: eventID, RunAt: confirmAt},
		{Kind: domain.JobReminder, UserID: userID, EventID: eventID, RunAt: remindAt},
	} {
		job := job
		if err := s.jobs.Create(ctx, &job); err != nil {
			return fmt.Errorf("create %s job: %w", job.Kind, err)
		}
	}

	s.notifier.Notify(ctx, userID,
		s.translator.T("", "approved", map[string]any{"Event": eventLabel(event)}),
		output.Choice{Label: s.translator.T("", "btn_cancel", nil), Data: fmt.Sprintf("cancel:%d", eventID)},
	)
	return nil
}

// Decline resolves the pending request (when present) and tells the user.
// Capacity is never touched.
func (s *ApprovalService) Decline(ctx context.Context, eventID, userID int64) error {
	if _, err := s.requests.Resolve(ctx, userID, eventID, domain.RequestDeclined); err != nil {
		return fmt.Errorf("resolve request: %w", err)
	}

	label := ""
	if event, err := s.events.FindByID(ctx, eventID); err == nil {
		label = eventLabel(event)
	}
	s.notifier.Notify(ctx, userID, s.translator.T("", "declined", map[string]any{"Event": label}))
	return nil
}

// notifyTimes derives the confirm and reminder run times from the event
// start, clamping to now when the lead window has already passed.
func notifyTimes(start, now time.Time) (confirmAt, remindAt time.Time) {
	confirmAt = start.Add(-confirmLead)
	if confirmAt.Before(now) {
		confirmAt = now
	}
	remindAt = start.Add(-reminderLead)
	if remindAt.Before(now) {
		remindAt = now
	}
	return confirmAt, remindAt
}
