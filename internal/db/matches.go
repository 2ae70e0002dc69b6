package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-matcher/internal/matching"
	"github.com/jonathan/resume-matcher/internal/skills"
)

// SaveMatch stores a match result, replacing any earlier result for the same
// résumé and job. Implements matching.ResultSink.
func (db *DB) SaveMatch(ctx context.Context, r *matching.Result) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO matches (resume_id, job_id, score, matched_skills, missing_skills)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (resume_id, job_id) DO UPDATE
		 SET score = $3, matched_skills = $4, missing_skills = $5, analyzed_at = NOW()
		 RETURNING id`,
		r.ResumeID, r.JobID, skills.RoundScore(r.Score), skills.Strings(r.Matched), skills.Strings(r.Missing),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save match: %w", err)
	}
	return id, nil
}

// GetMatch retrieves the stored result for a résumé/job pair. Returns nil, nil when absent.
func (db *DB) GetMatch(ctx context.Context, resumeID, jobID uuid.UUID) (*Match, error) {
	var m Match
	err := db.pool.QueryRow(ctx,
		`SELECT id, resume_id, job_id, score::float8, matched_skills, missing_skills, analyzed_at
		 FROM matches WHERE resume_id = $1 AND job_id = $2`,
		resumeID, jobID,
	).Scan(&m.ID, &m.ResumeID, &m.JobID, &m.Score, &m.MatchedSkills, &m.MissingSkills, &m.AnalyzedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return &m, nil
}
