package entities

import (
	"time"

	"github.com/google/uuid"
)

// Job is a deferred notification task planned at approval time and executed
// by the scheduler loop. Sent is monotonic: once true the job is never
// re-armed.
type Job struct {
	ID      uuid.UUID
	Kind    string
	UserID  int64
	EventID int64
	RunAt   time.Time
	Sent    bool
}
