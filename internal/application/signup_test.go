package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"clubbot/internal/domain"
	"clubbot/internal/domain/entities"
)

func newSignupFixture(t *testing.T) (*SignupService, *fakeStore, *fakeNotifier) {
	t.Helper()
	store := newFakeStore()
	notifier := &fakeNotifier{}
	svc := NewSignupService(store, store, fakeUsers{store}, store, notifier, fakeTranslator{})
	return svc, store, notifier
}

// seedConfirmed creates an event and a confirmed signup holding one seat.
func seedConfirmed(t *testing.T, store *fakeStore, userID int64) int64 {
	t.Helper()
	ctx := context.Background()
	event := store.addEvent(at(48*time.Hour), 2)
	if ok, _ := store.TryReserve(ctx, event.ID); !ok {
		t.Fatal("seed reserve failed")
	}
	if err := store.UpsertConfirmed(ctx, userID, event.ID, at(0)); err != nil {
		t.Fatalf("seed signup: %v", err)
	}
	return event.ID
}

func TestCancelReleasesSeatOnce(t *testing.T) {
	ctx := context.Background()
	svc, store, notifier := newSignupFixture(t)
	eventID := seedConfirmed(t, store, 42)

	if err := svc.Cancel(ctx, eventID, 42, domain.ByUser); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	event, _ := store.FindByID(ctx, eventID)
	if event.Remaining != 2 {
		t.Errorf("remaining = %d, want 2 after release", event.Remaining)
	}
	signup, _ := store.FindByUserAndEvent(ctx, 42, eventID)
	if signup.Status != domain.SignupCancelled || signup.ConfirmStatus != domain.ConfirmNo {
		t.Errorf("signup = %s/%s, want cancelled/no", signup.Status, signup.ConfirmStatus)
	}
	if len(notifier.sentTo(42)) != 1 {
		t.Errorf("user not notified about cancellation")
	}
	if len(notifier.operatorLog) != 0 {
		t.Errorf("user-initiated cancel should not ping the operator")
	}

	// The second cancel must fail and must not release again.
	err := svc.Cancel(ctx, eventID, 42, domain.ByUser)
	if !errors.Is(err, domain.ErrSignupNotConfirmed) {
		t.Fatalf("second cancel err = %v, want ErrSignupNotConfirmed", err)
	}
	event, _ = store.FindByID(ctx, eventID)
	if event.Remaining != 2 {
		t.Errorf("remaining = %d after double cancel, want 2", event.Remaining)
	}
}

func TestCancelByOperatorPingsOperator(t *testing.T) {
	ctx := context.Background()
	svc, store, notifier := newSignupFixture(t)
	eventID := seedConfirmed(t, store, 42)

	if err := svc.Cancel(ctx, eventID, 42, domain.ByOperator); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if len(notifier.sentTo(42)) != 1 {
		t.Errorf("user not notified")
	}
	if len(notifier.operatorLog) != 1 {
		t.Errorf("operator not notified about operator-initiated cancel")
	}
}

func TestCancelRequiresEventAndConfirmedSignup(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newSignupFixture(t)

	if err := svc.Cancel(ctx, 12345, 42, domain.ByUser); !errors.Is(err, domain.ErrEventNotFound) {
		t.Errorf("missing event err = %v, want ErrEventNotFound", err)
	}

	event := store.addEvent(at(48*time.Hour), 2)
	if err := svc.Cancel(ctx, event.ID, 42, domain.ByUser); !errors.Is(err, domain.ErrSignupNotConfirmed) {
		t.Errorf("missing signup err = %v, want ErrSignupNotConfirmed", err)
	}
}

func TestConfirmYesOnlyFlipsConfirmStatus(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newSignupFixture(t)
	eventID := seedConfirmed(t, store, 42)

	if err := svc.HandleConfirmResponse(ctx, eventID, 42, domain.ConfirmYes); err != nil {
		t.Fatalf("HandleConfirmResponse: %v", err)
	}
	signup, _ := store.FindByUserAndEvent(ctx, 42, eventID)
	if signup.Status != domain.SignupConfirmed || signup.ConfirmStatus != domain.ConfirmYes {
		t.Errorf("signup = %s/%s, want confirmed/yes", signup.Status, signup.ConfirmStatus)
	}
	event, _ := store.FindByID(ctx, eventID)
	if event.Remaining != 1 {
		t.Errorf("remaining = %d, yes must not touch capacity", event.Remaining)
	}
}

func TestConfirmNoReleasesSeat(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newSignupFixture(t)
	eventID := seedConfirmed(t, store, 42)

	if err := svc.HandleConfirmResponse(ctx, eventID, 42, domain.ConfirmNo); err != nil {
		t.Fatalf("HandleConfirmResponse: %v", err)
	}
	signup, _ := store.FindByUserAndEvent(ctx, 42, eventID)
	if signup.Status != domain.SignupCancelled || signup.ConfirmStatus != domain.ConfirmNo {
		t.Errorf("signup = %s/%s, want cancelled/no", signup.Status, signup.ConfirmStatus)
	}
	event, _ := store.FindByID(ctx, eventID)
	if event.Remaining != 2 {
		t.Errorf("remaining = %d, want 2 after no-answer release", event.Remaining)
	}

	// A cancel right after the "no" answer must not release a second seat.
	err := svc.Cancel(ctx, eventID, 42, domain.ByUser)
	if !errors.Is(err, domain.ErrSignupNotConfirmed) {
		t.Fatalf("cancel after no err = %v, want ErrSignupNotConfirmed", err)
	}
	event, _ = store.FindByID(ctx, eventID)
	if event.Remaining != 2 {
		t.Errorf("remaining = %d, released twice", event.Remaining)
	}
}

func TestConfirmResponseUnavailable(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newSignupFixture(t)

	event := store.addEvent(at(48*time.Hour), 2)
	if err := svc.HandleConfirmResponse(ctx, event.ID, 42, domain.ConfirmYes); !errors.Is(err, domain.ErrSignupNotFound) {
		t.Errorf("missing signup err = %v, want ErrSignupNotFound", err)
	}

	eventID := seedConfirmed(t, store, 42)
	if _, err := store.Cancel(context.Background(), 42, eventID); err != nil {
		t.Fatal(err)
	}
	if err := svc.HandleConfirmResponse(ctx, eventID, 42, domain.ConfirmYes); !errors.Is(err, domain.ErrSignupNotConfirmed) {
		t.Errorf("cancelled signup err = %v, want ErrSignupNotConfirmed", err)
	}
}

// The full seat handoff: with one seat, the first approval fills the event,
// the second fails, and a cancel frees the seat for the waiting user.
func TestSeatHandoffAfterCancel(t *testing.T) {
	ctx := context.Background()
	approvals, store, notifier := newApprovalFixture(t)
	signups := NewSignupService(store, store, fakeUsers{store}, store, notifier, fakeTranslator{})
	fixedNow(approvals, at(0))

	event := store.addEvent(at(48*time.Hour), 1)
	alice := &entities.User{ID: 1, Handle: "alice"}
	bob := &entities.User{ID: 2, Handle: "bob"}

	if _, err := approvals.RequestSignup(ctx, "", alice, event.ID); err != nil {
		t.Fatalf("alice request: %v", err)
	}
	if _, err := approvals.RequestSignup(ctx, "", bob, event.ID); err != nil {
		t.Fatalf("bob request: %v", err)
	}

	if err := approvals.Approve(ctx, event.ID, alice.ID); err != nil {
		t.Fatalf("approve alice: %v", err)
	}
	if err := approvals.Approve(ctx, event.ID, bob.ID); !errors.Is(err, domain.ErrNoSeats) {
		t.Fatalf("approve bob on full event err = %v, want ErrNoSeats", err)
	}

	if err := signups.Cancel(ctx, event.ID, alice.ID, domain.ByUser); err != nil {
		t.Fatalf("alice cancel: %v", err)
	}
	if err := approvals.Approve(ctx, event.ID, bob.ID); err != nil {
		t.Fatalf("approve bob after handoff: %v", err)
	}

	got, _ := store.FindByID(ctx, event.ID)
	if got.Remaining != 0 {
		t.Errorf("remaining = %d, want 0", got.Remaining)
	}
	bobSignup, _ := store.FindByUserAndEvent(ctx, bob.ID, event.ID)
	if bobSignup.Status != domain.SignupConfirmed {
		t.Errorf("bob signup = %s, want confirmed", bobSignup.Status)
	}
}

func TestRoster(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newSignupFixture(t)
	event := store.addEvent(at(48*time.Hour), 3)
	_ = store.UpsertConfirmed(ctx, 1, event.ID, at(time.Minute))
	_ = store.UpsertConfirmed(ctx, 2, event.ID, at(2*time.Minute))

	signups, err := svc.Roster(ctx, event.ID)
	if err != nil {
		t.Fatalf("Roster: %v", err)
	}
	if len(signups) != 2 {
		t.Fatalf("roster size = %d, want 2", len(signups))
	}
	if signups[0].UserID != 1 || signups[1].UserID != 2 {
		t.Errorf("roster order = %d, %d; want oldest confirmation first", signups[0].UserID, signups[1].UserID)
	}

	if _, err := svc.Roster(ctx, 999); !errors.Is(err, domain.ErrEventNotFound) {
		t.Errorf("missing event err = %v, want ErrEventNotFound", err)
	}
}
