package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// User represents a user profile
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"` // Never serialize to JSON
	PasswordSet  bool      `json:"password_set"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Resume is an uploaded résumé and its extracted text
type Resume struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Filename   string    `json:"filename,omitempty"`
	Text       string    `json:"resume_text"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Title is the display name used in match responses.
func (r *Resume) Title() string {
	if r.Filename != "" {
		return r.Filename
	}
	return fmt.Sprintf("Resume %s", r.ID)
}

// Job is a job posting
type Job struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	SourceURL   string    `json:"source_url,omitempty"`
	PostedAt    time.Time `json:"posted_at"`
}

// Match is a stored score for a résumé/job pair
type Match struct {
	ID            uuid.UUID `json:"match_id"`
	ResumeID      uuid.UUID `json:"resume_id"`
	JobID         uuid.UUID `json:"job_id"`
	Score         float64   `json:"score"`
	MatchedSkills []string  `json:"matched_skills"`
	MissingSkills []string  `json:"missing_skills"`
	AnalyzedAt    time.Time `json:"analyzed_at"`
}

// ListFilters holds optional filters for list queries
type ListFilters struct {
	UserID uuid.UUID // résumés only; uuid.Nil means all users
	Limit  int
	Offset int
}

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

func (f ListFilters) limit() int {
	switch {
	case f.Limit <= 0:
		return defaultListLimit
	case f.Limit > maxListLimit:
		return maxListLimit
	default:
		return f.Limit
	}
}
