package output

import "context"

// Choice is an inline affordance attached to a message (approve/decline,
// yes/no). Data is the opaque callback payload routed back by the transport.
type Choice struct {
	Label string
	Data  string
}

// Notifier is the chat-transport collaborator. Both operations are
// best-effort: the core never branches on delivery success and failures are
// never retried.
type Notifier interface {
	// Notify sends text to a user, optionally with inline choices, and
	// reports whether delivery was attempted successfully.
	Notify(ctx context.Context, userID int64, text string, choices ...Choice) bool
	// LogToOperator sends text to the operator chat and returns the
	// message handle for later reply correlation (0 when the send failed).
	LogToOperator(ctx context.Context, text string, choices ...Choice) int
}
