package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"clubbot/internal/domain"
	"clubbot/internal/domain/entities"
	"clubbot/internal/ports/output"
)

// EventService is the operator-facing CRUD surface: events, locations and
// the user directory. It never mutates capacity directly; seats move only
// through the ledger.
type EventService struct {
	events    output.EventRepository
	locations output.LocationRepository
	users     output.UserRepository
	notifier  output.Notifier
	now       func() time.Time
}

func NewEventService(
	events output.EventRepository,
	locations output.LocationRepository,
	users output.UserRepository,
	notifier output.Notifier,
) *EventService {
	return &EventService{
		events:    events,
		locations: locations,
		users:     users,
		notifier:  notifier,
		now:       time.Now,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, title string, startsAt time.Time, capacity int) (*entities.Event, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("event title is required")
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("capacity must be a positive integer")
	}
	if !startsAt.After(s.now()) {
		return nil, domain.ErrEventStarted
	}

	event := &entities.Event{
		Title:    title,
		StartsAt: startsAt,
		Capacity: capacity,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id int64) error {
	return s.events.Delete(ctx, id)
}

func (s *EventService) SetLocation(ctx context.Context, eventID int64, locationID uuid.UUID) error {
	if _, err := s.locations.FindByID(ctx, locationID); err != nil {
		return err
	}
	return s.events.SetLocation(ctx, eventID, locationID)
}

func (s *EventService) ListFutureEvents(ctx context.Context) ([]entities.Event, error) {
	return s.events.ListFuture(ctx, s.now())
}

func (s *EventService) GetEvent(ctx context.Context, id int64) (*entities.Event, error) {
	return s.events.FindByID(ctx, id)
}

func (s *EventService) CreateLocation(ctx context.Context, name, address, mapURL string) (*entities.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("location name is required")
	}
	location := &entities.Location{
		ID:      uuid.New(),
		Name:    name,
		Address: strings.TrimSpace(address),
		MapURL:  strings.TrimSpace(mapURL),
	}
	if err := s.locations.Create(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

func (s *EventService) ListLocations(ctx context.Context) ([]entities.Location, error) {
	return s.locations.ListAll(ctx)
}

// DeleteLocation removes the location; events pointing at it fall back to an
// unset venue.
func (s *EventService) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	return s.locations.Delete(ctx, id)
}

func (s *EventService) SetBlocked(ctx context.Context, userID int64, blocked bool) error {
	return s.users.SetBlocked(ctx, userID, blocked)
}

func (s *EventService) ListUsers(ctx context.Context) ([]entities.User, error) {
	return s.users.ListAll(ctx)
}

// Broadcast sends text to every non-blocked user, best effort. It returns
// the number of users the send was attempted for.
func (s *EventService) Broadcast(ctx context.Context, text string) (int, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, u := range users {
		if u.Blocked {
			continue
		}
		if s.notifier.Notify(ctx, u.ID, text) {
			sent++
		}
	}
	return sent, nil
}
