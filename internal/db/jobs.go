package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const jobColumns = `id, title, description, COALESCE(source_url, ''), posted_at`

func scanJob(row pgx.Row) (*Job, error) {
	var j Job
	if err := row.Scan(&j.ID, &j.Title, &j.Description, &j.SourceURL, &j.PostedAt); err != nil {
		return nil, err
	}
	return &j, nil
}

// CreateJob stores a job posting. sourceURL may be empty.
func (db *DB) CreateJob(ctx context.Context, title, description, sourceURL string) (*Job, error) {
	j, err := scanJob(db.pool.QueryRow(ctx,
		`INSERT INTO jobs (title, description, source_url)
		 VALUES ($1, $2, NULLIF($3, ''))
		 RETURNING `+jobColumns,
		title, description, sourceURL,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return j, nil
}

// GetJob retrieves a job by ID. Returns nil, nil when absent.
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*Job, error) {
	j, err := scanJob(db.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return j, nil
}

// ListJobs returns jobs, newest first
func (db *DB) ListJobs(ctx context.Context, filters ListFilters) ([]Job, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY posted_at DESC, id LIMIT $1 OFFSET $2`,
		filters.limit(), filters.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *j)
	}
	return jobs, rows.Err()
}

// allJobs returns every job in insertion order.
func (db *DB) allJobs(ctx context.Context) ([]Job, error) {
	rows, err := db.pool.Query(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY posted_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *j)
	}
	return jobs, rows.Err()
}
