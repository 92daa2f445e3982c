package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anyhire/anyhire-be/internal/api/domain"
	"github.com/anyhire/anyhire-be/internal/api/model"
)

const jobStatusColumns = `
	status_id, user_id, category, title, job_type,
	payment, deadline, status, created_at, updated_at
`

// JobStatusUpdate carries the fields of a partial update. Nil fields
// are left untouched.
type JobStatusUpdate struct {
	Category *string
	Title    *string
	JobType  *string
	Payment  *float64
	Deadline *time.Time
	Status   *string
}

func (s *Storage) CreateJobStatus(ctx context.Context, record *model.JobStatus) error {
	query := `
		INSERT INTO job_statuses (
			status_id, user_id, category, title, job_type,
			payment, deadline, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10
		)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		record.StatusID,
		record.UserID,
		record.Category,
		record.Title,
		record.JobType,
		record.Payment,
		record.Deadline,
		record.Status,
		record.CreatedAt,
		record.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create job status: %w", err)
	}

	return nil
}

func (s *Storage) ListJobStatuses(ctx context.Context) ([]model.JobStatus, error) {
	query := `SELECT` + jobStatusColumns + `FROM job_statuses`

	var records []model.JobStatus
	if err := s.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("failed to list job statuses: %w", err)
	}

	return records, nil
}

func (s *Storage) GetJobStatusByID(ctx context.Context, statusID string) (*model.JobStatus, error) {
	query := `SELECT` + jobStatusColumns + `FROM job_statuses WHERE status_id = $1`

	var record model.JobStatus
	err := s.db.GetContext(ctx, &record, query, statusID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get job status: %w", err)
	}

	return &record, nil
}

// GetJobStatusByCategory returns the first record with an exact
// category match, in insertion order.
func (s *Storage) GetJobStatusByCategory(ctx context.Context, category string) (*model.JobStatus, error) {
	query := `SELECT` + jobStatusColumns + `
		FROM job_statuses
		WHERE category = $1
		ORDER BY created_at ASC
		LIMIT 1
	`

	var record model.JobStatus
	err := s.db.GetContext(ctx, &record, query, category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get job status by category: %w", err)
	}

	return &record, nil
}

// UpdateJobStatus merges the provided fields into an existing record
// and returns the post-update row. Untouched fields keep their values.
func (s *Storage) UpdateJobStatus(ctx context.Context, statusID string, update JobStatusUpdate) (*model.JobStatus, error) {
	query := `UPDATE job_statuses SET updated_at = $1`
	args := []interface{}{time.Now()}
	argIdx := 2

	appendSet := func(column string, value interface{}) {
		query += fmt.Sprintf(", %s = $%d", column, argIdx)
		args = append(args, value)
		argIdx++
	}

	if update.Category != nil {
		appendSet("category", *update.Category)
	}
	if update.Title != nil {
		appendSet("title", *update.Title)
	}
	if update.JobType != nil {
		appendSet("job_type", *update.JobType)
	}
	if update.Payment != nil {
		appendSet("payment", *update.Payment)
	}
	if update.Deadline != nil {
		appendSet("deadline", *update.Deadline)
	}
	if update.Status != nil {
		appendSet("status", *update.Status)
	}

	query += fmt.Sprintf(" WHERE status_id = $%d RETURNING", argIdx) + jobStatusColumns
	args = append(args, statusID)

	var record model.JobStatus
	err := s.db.GetContext(ctx, &record, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update job status: %w", err)
	}

	return &record, nil
}

// DeleteJobStatusesByOwner removes every record owned by userID and
// returns the number of rows deleted. Zero rows is still a success.
func (s *Storage) DeleteJobStatusesByOwner(ctx context.Context, userID string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM job_statuses WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete job statuses: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	s.logger.Info("Job statuses deleted by owner",
		slog.String("user_id", userID),
		slog.Int64("deleted", deleted),
	)

	return deleted, nil
}
