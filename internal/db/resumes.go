package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const resumeColumns = `id, user_id, COALESCE(filename, ''), resume_text, uploaded_at`

func scanResume(row pgx.Row) (*Resume, error) {
	var r Resume
	if err := row.Scan(&r.ID, &r.UserID, &r.Filename, &r.Text, &r.UploadedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateResume stores a résumé and returns it with its generated fields
func (db *DB) CreateResume(ctx context.Context, userID uuid.UUID, filename, text string) (*Resume, error) {
	r, err := scanResume(db.pool.QueryRow(ctx,
		`INSERT INTO resumes (user_id, filename, resume_text)
		 VALUES ($1, NULLIF($2, ''), $3)
		 RETURNING `+resumeColumns,
		userID, filename, text,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return r, nil
}

// GetResume retrieves a résumé by ID. Returns nil, nil when absent.
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*Resume, error) {
	r, err := scanResume(db.pool.QueryRow(ctx, `SELECT `+resumeColumns+` FROM resumes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return r, nil
}

// ListResumes returns résumés, newest first
func (db *DB) ListResumes(ctx context.Context, filters ListFilters) ([]Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes`
	args := []any{}
	argNum := 1

	if filters.UserID != uuid.Nil {
		query += fmt.Sprintf(" WHERE user_id = $%d", argNum)
		args = append(args, filters.UserID)
		argNum++
	}
	query += fmt.Sprintf(" ORDER BY uploaded_at DESC, id LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, filters.limit(), filters.Offset)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	resumes := []Resume{}
	for rows.Next() {
		r, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, *r)
	}
	return resumes, rows.Err()
}
