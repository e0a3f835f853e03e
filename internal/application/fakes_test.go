package application

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"clubbot/internal/domain"
	"clubbot/internal/domain/entities"
	"clubbot/internal/ports/output"
)

// fakeStore is an in-memory stand-in for the database-backed repositories
// and the capacity ledger. A single mutex gives it the same "serializing
// transaction" behavior the real ledger gets from row locking.
type fakeStore struct {
	mu          sync.Mutex
	events      map[int64]*entities.Event
	requests    []*entities.Request
	signups     map[[2]int64]*entities.Signup
	jobs        []*entities.Job
	users       map[int64]*entities.User
	locations   map[uuid.UUID]*entities.Location
	nextEventID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		events:    make(map[int64]*entities.Event),
		signups:   make(map[[2]int64]*entities.Signup),
		users:     make(map[int64]*entities.User),
		locations: make(map[uuid.UUID]*entities.Location),
	}
}

func (f *fakeStore) addEvent(startsAt time.Time, capacity int) *entities.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextEventID++
	e := &entities.Event{
		ID:        f.nextEventID,
		Title:     fmt.Sprintf("meeting %d", f.nextEventID),
		StartsAt:  startsAt,
		Capacity:  capacity,
		Remaining: capacity,
	}
	f.events[e.ID] = e
	return e
}

// EventRepository

func (f *fakeStore) Create(ctx context.Context, event *entities.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextEventID++
	event.ID = f.nextEventID
	event.Remaining = event.Capacity
	event.CreatedAt = time.Now()
	copied := *event
	f.events[event.ID] = &copied
	return nil
}

func (f *fakeStore) FindByID(ctx context.Context, id int64) (*entities.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	copied := *e
	return &copied, nil
}

func (f *fakeStore) ListFuture(ctx context.Context, now time.Time) ([]entities.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entities.Event
	for _, e := range f.events {
		if e.StartsAt.After(now) {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

func (f *fakeStore) SetLocation(ctx context.Context, eventID int64, locationID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[eventID]
	if !ok {
		return domain.ErrEventNotFound
	}
	e.LocationID = uuid.NullUUID{UUID: locationID, Valid: true}
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	f.deleteEventLocked(id)
	return nil
}

func (f *fakeStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, e := range f.events {
		if !e.StartsAt.After(now) {
			f.deleteEventLocked(id)
			n++
		}
	}
	return n, nil
}

// deleteEventLocked cascades like the SQL foreign keys do.
func (f *fakeStore) deleteEventLocked(id int64) {
	delete(f.events, id)
	var requests []*entities.Request
	for _, r := range f.requests {
		if r.EventID != id {
			requests = append(requests, r)
		}
	}
	f.requests = requests
	for key := range f.signups {
		if key[1] == id {
			delete(f.signups, key)
		}
	}
	var jobs []*entities.Job
	for _, j := range f.jobs {
		if j.EventID != id {
			jobs = append(jobs, j)
		}
	}
	f.jobs = jobs
}

// CapacityLedger

func (f *fakeStore) TryReserve(ctx context.Context, eventID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[eventID]
	if !ok || e.Remaining <= 0 {
		return false, nil
	}
	e.Remaining--
	return true, nil
}

func (f *fakeStore) Release(ctx context.Context, eventID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[eventID]
	if !ok || e.Remaining >= e.Capacity {
		return nil
	}
	e.Remaining++
	return nil
}

// RequestRepository

func (f *fakeStore) CreateRequest(ctx context.Context, request *entities.Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	request.Status = domain.RequestPending
	request.CreatedAt = time.Now()
	copied := *request
	f.requests = append(f.requests, &copied)
	return nil
}

func (f *fakeStore) FindPending(ctx context.Context, userID, eventID int64) (*entities.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.requests) - 1; i >= 0; i-- {
		r := f.requests[i]
		if r.UserID == userID && r.EventID == eventID && r.Status == domain.RequestPending {
			copied := *r
			return &copied, nil
		}
	}
	return nil, domain.ErrRequestNotFound
}

func (f *fakeStore) Resolve(ctx context.Context, userID, eventID int64, status string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.requests) - 1; i >= 0; i-- {
		r := f.requests[i]
		if r.UserID == userID && r.EventID == eventID && r.Status == domain.RequestPending {
			r.Status = status
			return true, nil
		}
	}
	return false, nil
}

// SignupRepository

func (f *fakeStore) UpsertConfirmed(ctx context.Context, userID, eventID int64, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signups[[2]int64{userID, eventID}] = &entities.Signup{
		UserID:        userID,
		EventID:       eventID,
		Status:        domain.SignupConfirmed,
		ConfirmStatus: domain.ConfirmUnknown,
		ConfirmedAt:   at,
	}
	return nil
}

func (f *fakeStore) FindByUserAndEvent(ctx context.Context, userID, eventID int64) (*entities.Signup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.signups[[2]int64{userID, eventID}]
	if !ok {
		return nil, domain.ErrSignupNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeStore) Cancel(ctx context.Context, userID, eventID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.signups[[2]int64{userID, eventID}]
	if !ok || s.Status != domain.SignupConfirmed {
		return false, nil
	}
	s.Status = domain.SignupCancelled
	s.ConfirmStatus = domain.ConfirmNo
	return true, nil
}

func (f *fakeStore) SetConfirmStatus(ctx context.Context, userID, eventID int64, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.signups[[2]int64{userID, eventID}]
	if !ok {
		return domain.ErrSignupNotFound
	}
	s.ConfirmStatus = status
	return nil
}

func (f *fakeStore) ListByEvent(ctx context.Context, eventID int64) ([]entities.Signup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entities.Signup
	for _, s := range f.signups {
		if s.EventID == eventID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ConfirmedAt.Before(out[j].ConfirmedAt) })
	return out, nil
}

// JobRepository

func (f *fakeStore) CreateJob(ctx context.Context, job *entities.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	copied := *job
	f.jobs = append(f.jobs, &copied)
	return nil
}

func (f *fakeStore) FindDue(ctx context.Context, now time.Time, limit int) ([]entities.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entities.Job
	for _, j := range f.jobs {
		if !j.Sent && !j.RunAt.After(now) {
			out = append(out, *j)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RunAt.Before(out[j].RunAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) MarkSent(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, j := range f.jobs {
		if j.ID == id {
			j.Sent = true
			return nil
		}
	}
	return nil
}

func (f *fakeStore) jobsFor(eventID, userID int64) []entities.Job {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entities.Job
	for _, j := range f.jobs {
		if j.EventID == eventID && j.UserID == userID {
			out = append(out, *j)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RunAt.Before(out[j].RunAt) })
	return out
}

// UserRepository

func (f *fakeStore) Upsert(ctx context.Context, user *entities.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.users[user.ID]; ok {
		existing.Handle = user.Handle
		user.Blocked = existing.Blocked
		user.FirstSeenAt = existing.FirstSeenAt
		return nil
	}
	user.FirstSeenAt = time.Now()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeStore) FindUserByID(ctx context.Context, id int64) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeStore) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Blocked = blocked
	return nil
}

func (f *fakeStore) ListAll(ctx context.Context) ([]entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entities.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// LocationRepository

func (f *fakeStore) CreateLocation(ctx context.Context, location *entities.Location) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if location.ID == uuid.Nil {
		location.ID = uuid.New()
	}
	copied := *location
	f.locations[location.ID] = &copied
	return nil
}

func (f *fakeStore) FindLocationByID(ctx context.Context, id uuid.UUID) (*entities.Location, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.locations[id]
	if !ok {
		return nil, domain.ErrLocationNotFound
	}
	copied := *l
	return &copied, nil
}

func (f *fakeStore) ListAllLocations(ctx context.Context) ([]entities.Location, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entities.Location
	for _, l := range f.locations {
		out = append(out, *l)
	}
	return out, nil
}

func (f *fakeStore) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.locations[id]; !ok {
		return domain.ErrLocationNotFound
	}
	delete(f.locations, id)
	return nil
}

// Port views: method names collide across repositories (Create, FindByID),
// so each repository port gets a thin named view over the shared store.

type fakeRequests struct{ *fakeStore }

func (f fakeRequests) Create(ctx context.Context, r *entities.Request) error {
	return f.CreateRequest(ctx, r)
}

type fakeJobs struct{ *fakeStore }

func (f fakeJobs) Create(ctx context.Context, j *entities.Job) error {
	return f.CreateJob(ctx, j)
}

type fakeUsers struct{ *fakeStore }

func (f fakeUsers) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	return f.FindUserByID(ctx, id)
}

type fakeLocations struct{ *fakeStore }

func (f fakeLocations) Create(ctx context.Context, l *entities.Location) error {
	return f.CreateLocation(ctx, l)
}

func (f fakeLocations) FindByID(ctx context.Context, id uuid.UUID) (*entities.Location, error) {
	return f.FindLocationByID(ctx, id)
}

func (f fakeLocations) ListAll(ctx context.Context) ([]entities.Location, error) {
	return f.ListAllLocations(ctx)
}

func (f fakeLocations) Delete(ctx context.Context, id uuid.UUID) error {
	return f.DeleteLocation(ctx, id)
}

// fakeNotifier records every send instead of talking to a transport.
type fakeNotifier struct {
	mu          sync.Mutex
	sent        []sentMessage
	operatorLog []sentMessage
	fail        bool
}

type sentMessage struct {
	userID  int64
	text    string
	choices []output.Choice
}

func (n *fakeNotifier) Notify(ctx context.Context, userID int64, text string, choices ...output.Choice) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMessage{userID: userID, text: text, choices: choices})
	return !n.fail
}

func (n *fakeNotifier) LogToOperator(ctx context.Context, text string, choices ...output.Choice) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.operatorLog = append(n.operatorLog, sentMessage{text: text, choices: choices})
	if n.fail {
		return 0
	}
	return len(n.operatorLog)
}

func (n *fakeNotifier) sentTo(userID int64) []sentMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []sentMessage
	for _, m := range n.sent {
		if m.userID == userID {
			out = append(out, m)
		}
	}
	return out
}

func (n *fakeNotifier) reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = nil
	n.operatorLog = nil
}

// fakeTranslator renders "key" or "key k=v ..." with sorted data keys so
// tests can assert on message identity and payload.
type fakeTranslator struct{}

func (fakeTranslator) T(locale, key string, data map[string]any) string {
	if len(data) == 0 {
		return key
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := key
	for _, k := range keys {
		out += fmt.Sprintf(" %s=%v", k, data[k])
	}
	return out
}
