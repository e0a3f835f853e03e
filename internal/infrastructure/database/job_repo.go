package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"clubbot/internal/domain/entities"
	"clubbot/internal/ports/output"
)

var _ output.JobRepository = (*JobRepository)(nil)

type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool}
}

func (r *JobRepository) Create(ctx context.Context, job *entities.Job) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO jobs (id, kind, user_id, event_id, run_at, sent)
		 VALUES ($1, $2, $3, $4, $5, FALSE)`,
		job.ID, job.Kind, job.UserID, job.EventID, job.RunAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func (r *JobRepository) FindDue(ctx context.Context, now time.Time, limit int) ([]entities.Job, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, kind, user_id, event_id, run_at, sent
		 FROM jobs
		 WHERE sent = FALSE AND run_at <= $1
		 ORDER BY run_at ASC
		 LIMIT $2`,
		now.UTC(), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("find due jobs: %w", err)
	}
	defer rows.Close()

	var out []entities.Job
	for rows.Next() {
		var j entities.Job
		if err := rows.Scan(&j.ID, &j.Kind, &j.UserID, &j.EventID, &j.RunAt, &j.Sent); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (r *JobRepository) MarkSent(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx,
		`UPDATE jobs SET sent = TRUE WHERE id = $1`,
		id,
	); err != nil {
		return fmt.Errorf("mark job sent: %w", err)
	}
	return nil
}
