package entities

import "time"

// User is the minimal directory record for a Telegram user, keyed by the
// chat id. The core only references users by id; Handle is for display.
type User struct {
	ID          int64
	Handle      string
	Blocked     bool
	FirstSeenAt time.Time
}
