package entities

import "time"

// Signup is the durable record that a user holds (or held) a seat, keyed by
// (user, event). Status tracks the seat; ConfirmStatus tracks the pre-event
// check-in answer on an independent axis.
type Signup struct {
	UserID        int64
	EventID       int64
	Status        string
	ConfirmStatus string
	ConfirmedAt   time.Time
}
