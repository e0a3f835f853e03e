package output

import (
	"context"
	"time"

	"github.com/google/uuid"

	"clubbot/internal/domain/entities"
)

type JobRepository interface {
	Create(ctx context.Context, job *entities.Job) error
	// FindDue returns up to limit unsent jobs with run_at <= now, ordered
	// by run_at ascending.
	FindDue(ctx context.Context, now time.Time, limit int) ([]entities.Job, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
}
