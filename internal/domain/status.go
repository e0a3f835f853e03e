package domain

// Request statuses. A pair (user, event) may have at most one pending
// request at a time; approved/declined are terminal for that request but a
// new pending request may be created afterwards.
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestDeclined = "declined"
)

// Signup statuses. Cancellation is terminal for the row; a fresh approval
// upserts the same row back to confirmed.
const (
	SignupConfirmed = "confirmed"
	SignupCancelled = "cancelled"
)

// Pre-event check-in answers, independent of the signup status.
const (
	ConfirmUnknown = "unknown"
	ConfirmYes     = "yes"
	ConfirmNo      = "no"
)

// Job kinds.
const (
	JobConfirm  = "confirm"
	JobReminder = "reminder"
)

// Cancellation initiators.
const (
	ByUser     = "user"
	ByOperator = "operator"
)
