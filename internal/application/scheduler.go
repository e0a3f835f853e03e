package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"clubbot/internal/domain"
	"clubbot/internal/domain/entities"
	"clubbot/internal/ports/output"
	"clubbot/pkg/tz"
)

const (
	pollInterval = 20 * time.Second
	dueBatchSize = 50
)

// Scheduler is the single background worker: every poll cycle it sweeps
// expired events and executes due jobs. One broken job never aborts the rest
// of the batch or the loop.
type Scheduler struct {
	events     output.EventRepository
	signups    output.SignupRepository
	jobs       output.JobRepository
	users      output.UserRepository
	locations  output.LocationRepository
	notifier   output.Notifier
	translator output.T
	interval   time.Duration
	now        func() time.Time
}

func NewScheduler(
	events output.EventRepository,
	signups output.SignupRepository,
	jobs output.JobRepository,
	users output.UserRepository,
	locations output.LocationRepository,
	notifier output.Notifier,
	translator output.T,
) *Scheduler {
	return &Scheduler{
		events:     events,
		signups:    signups,
		jobs:       jobs,
		users:      users,
		locations:  locations,
		notifier:   notifier,
		translator: translator,
		interval:   pollInterval,
		now:        time.Now,
	}
}

// Run polls until ctx is cancelled. Cancellation is only observed between
// iterations, so the current one always finishes cleanly.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Println("🕑 Scheduler stopped.")
			return
		case <-ticker.C:
			s.PollOnce(ctx, s.now())
		}
	}
}

// PollOnce runs one poll cycle: sweep expired events first so their jobs are
// pruned before they can fire, then execute the due jobs in run-time order.
func (s *Scheduler) PollOnce(ctx context.Context, now time.Time) {
	swept, err := s.events.DeleteExpired(ctx, now)
	if err != nil {
		log.Printf("⚠️ Scheduler: sweep expired events: %v", err)
	} else if swept > 0 {
		log.Printf("🧹 Scheduler: removed %d expired event(s)", swept)
	}

	due, err := s.jobs.FindDue(ctx, now, dueBatchSize)
	if err != nil {
		log.Printf("⚠️ Scheduler: find due jobs: %v", err)
		return
	}

	for i := range due {
		if err := s.processJob(ctx, now, &due[i]); err != nil {
			log.Printf("⚠️ Scheduler: job %s (%s): %v", due[i].ID, due[i].Kind, err)
		}
	}
}

// processJob re-validates state before dispatching: a stale job must never
// fire. The job is marked sent after the dispatch attempt regardless of
// delivery success, so a flaky transport cannot cause infinite retries.
func (s *Scheduler) processJob(ctx context.Context, now time.Time, job *entities.Job) error {
	event, err := s.events.FindByID(ctx, job.EventID)
	if errors.Is(err, domain.ErrEventNotFound) {
		return s.discard(ctx, job)
	}
	if err != nil {
		// Store trouble: leave the job unsent and retry next poll.
		return err
	}
	if event.Started(now) {
		return s.discard(ctx, job)
	}

	signup, err := s.signups.FindByUserAndEvent(ctx, job.UserID, job.EventID)
	if errors.Is(err, domain.ErrSignupNotFound) {
		return s.discard(ctx, job)
	}
	if err != nil {
		return err
	}
	if signup.Status != domain.SignupConfirmed {
		return s.discard(ctx, job)
	}

	user, err := s.users.FindByID(ctx, job.UserID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return s.discard(ctx, job)
	}
	if err != nil {
		return err
	}
	if user.Blocked {
		return s.discard(ctx, job)
	}

	switch job.Kind {
	case domain.JobConfirm:
		s.notifier.Notify(ctx, job.UserID,
			s.translator.T("", "confirm_prompt", map[string]any{"Event": eventLabel(event)}),
			output.Choice{Label: s.translator.T("", "btn_yes", nil), Data: fmt.Sprintf("cfm:yes:%d", job.EventID)},
			output.Choice{Label: s.translator.T("", "btn_no", nil), Data: fmt.Sprintf("cfm:no:%d", job.EventID)},
		)
	case domain.JobReminder:
		s.notifier.Notify(ctx, job.UserID,
			s.translator.T("", "reminder", map[string]any{
				"Event":    eventLabel(event),
				"Location": s.locationText(ctx, event),
			}))
	default:
		log.Printf("⚠️ Scheduler: unknown job kind %q, discarding", job.Kind)
	}

	return s.jobs.MarkSent(ctx, job.ID)
}

func (s *Scheduler) discard(ctx context.Context, job *entities.Job) error {
	if err := s.jobs.MarkSent(ctx, job.ID); err != nil {
		return fmt.Errorf("discard job: %w", err)
	}
	return nil
}

// locationText renders the event's venue for the reminder, or the localized
// placeholder when no location is set.
func (s *Scheduler) locationText(ctx context.Context, event *entities.Event) string {
	if !event.LocationID.Valid {
		return s.translator.T("", "location_unset", nil)
	}
	location, err := s.locations.FindByID(ctx, event.LocationID.UUID)
	if err != nil {
		return s.translator.T("", "location_unset", nil)
	}
	text := location.Name
	if location.Address != "" {
		text += ", " + location.Address
	}
	return text
}

// StartTimeDisplay formats an instant in the club's display timezone.
func StartTimeDisplay(t time.Time) string {
	return t.In(tz.Moscow).Format("02.01.2006 15:04")
}
