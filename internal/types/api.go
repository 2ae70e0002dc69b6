package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-matcher/internal/vocabulary"
)

// CreateJobRequest adds a job posting.
type CreateJobRequest struct {
	Title       string `json:"title" form:"title" validate:"required,max=200"`
	Description string `json:"description" form:"description" validate:"required,max=200000"`
}

// JobFromURLRequest imports a job posting from a web page. Title overrides
// the page title when set.
type JobFromURLRequest struct {
	URL   string `json:"url" form:"url" validate:"required,http_url"`
	Title string `json:"title,omitempty" form:"title" validate:"omitempty,max=200"`
}

// MatchRequest scores a stored résumé against a stored job.
type MatchRequest struct {
	ResumeID string `json:"resume_id" form:"resume_id" validate:"required,uuid"`
	JobID    string `json:"job_id" form:"job_id" validate:"required,uuid"`
}

// MatchTextRequest scores two raw texts. Empty texts are allowed and score 0.
type MatchTextRequest struct {
	ResumeText string `json:"resume_text" form:"resume_text" validate:"max=200000"`
	JobText    string `json:"job_text" form:"job_text" validate:"max=200000"`
}

// Validate validates the CreateJobRequest using the validator.
func (r *CreateJobRequest) Validate() error { return validate.Struct(r) }

// Validate validates the JobFromURLRequest using the validator.
func (r *JobFromURLRequest) Validate() error { return validate.Struct(r) }

// Validate validates the MatchRequest using the validator.
func (r *MatchRequest) Validate() error { return validate.Struct(r) }

// Validate validates the MatchTextRequest using the validator.
func (r *MatchTextRequest) Validate() error { return validate.Struct(r) }

// IDs parses the résumé and job ids. Call after Validate.
func (r *MatchRequest) IDs() (resumeID, jobID uuid.UUID, err error) {
	if resumeID, err = uuid.Parse(r.ResumeID); err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	if jobID, err = uuid.Parse(r.JobID); err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return resumeID, jobID, nil
}

// UploadResponse is returned by the résumé upload endpoint.
type UploadResponse struct {
	Filename    string    `json:"filename"`
	ResumeID    uuid.UUID `json:"resume_id"`
	Status      string    `json:"status"`
	Placeholder bool      `json:"placeholder,omitempty"` // text extraction failed
}

// MatchResponse is returned when a match is computed.
type MatchResponse struct {
	MatchID       uuid.UUID          `json:"match_id"`
	Score         float64            `json:"score"`
	MatchedSkills []vocabulary.Skill `json:"matched_skills"`
	MissingSkills []vocabulary.Skill `json:"missing_skills"`
	ResumeTitle   string             `json:"resume_title"`
	JobTitle      string             `json:"job_title"`
}

// StoredMatchResponse is a previously computed match.
type StoredMatchResponse struct {
	Score         float64   `json:"score"`
	MatchedSkills []string  `json:"matched_skills"`
	MissingSkills []string  `json:"missing_skills"`
	AnalyzedAt    time.Time `json:"analyzed_at"`
}

// TextMatchResponse is returned for raw-text matches.
type TextMatchResponse struct {
	Score         float64            `json:"score"`
	MatchedSkills []vocabulary.Skill `json:"matched_skills"`
	MissingSkills []vocabulary.Skill `json:"missing_skills"`
	ResumeSkills  []vocabulary.Skill `json:"resume_skills"`
	JobSkills     []vocabulary.Skill `json:"job_skills"`
}

// SkillsResponse lists the skills found in a stored résumé.
type SkillsResponse struct {
	ResumeID uuid.UUID          `json:"resume_id"`
	Skills   []vocabulary.Skill `json:"skills"`
}

// RankedJob is one entry of a résumé's job ranking.
type RankedJob struct {
	JobID         uuid.UUID          `json:"job_id"`
	JobTitle      string             `json:"job_title"`
	Score         float64            `json:"score"`
	MatchedSkills []vocabulary.Skill `json:"matched_skills"`
	MissingSkills []vocabulary.Skill `json:"missing_skills"`
}

// RankingResponse ranks every job for one résumé, best first.
type RankingResponse struct {
	ResumeID uuid.UUID   `json:"resume_id"`
	Jobs     []RankedJob `json:"jobs"`
}
