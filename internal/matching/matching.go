// Package matching scores a résumé against job postings using the skill
// extractor and scorer, loading texts from a TextSource.
package matching

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/vocabulary"
)

// ErrNotFound is returned when a résumé or job does not exist in the source.
var ErrNotFound = errors.New("not found")

// Document is a stored text with its title.
type Document struct {
	ID    uuid.UUID
	Title string
	Text  string
}

// TextSource loads stored résumé and job texts.
// Lookups return (nil, nil) when the record does not exist.
type TextSource interface {
	ResumeDocument(ctx context.Context, id uuid.UUID) (*Document, error)
	JobDocument(ctx context.Context, id uuid.UUID) (*Document, error)
	JobDocuments(ctx context.Context) ([]Document, error)
}

// ResultSink persists match results and returns the stored match id.
type ResultSink interface {
	SaveMatch(ctx context.Context, r *Result) (uuid.UUID, error)
}

// Result is a scored résumé/job pair.
type Result struct {
	MatchID     uuid.UUID `json:"match_id,omitempty"`
	ResumeID    uuid.UUID `json:"resume_id,omitempty"`
	JobID       uuid.UUID `json:"job_id,omitempty"`
	ResumeTitle string    `json:"resume_title,omitempty"`
	JobTitle    string    `json:"job_title,omitempty"`

	ResumeSkills []vocabulary.Skill `json:"resume_skills"`
	JobSkills    []vocabulary.Skill `json:"job_skills"`

	skills.Result
}

// Service runs matches. The zero value is not usable; use NewService.
type Service struct {
	extractor *skills.Extractor
	source    TextSource
	sink      ResultSink
	workers   int
}

// Option configures a Service.
type Option func(*Service)

// WithSink stores every result produced by Match.
func WithSink(sink ResultSink) Option {
	return func(s *Service) { s.sink = sink }
}

// WithWorkers bounds the number of jobs RankJobs scores concurrently.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// NewService builds a Service. A nil extractor uses the default vocabulary.
// source may be nil when only MatchText is needed.
func NewService(extractor *skills.Extractor, source TextSource, opts ...Option) *Service {
	if extractor == nil {
		extractor = skills.Default()
	}
	s := &Service{
		extractor: extractor,
		source:    source,
		workers:   runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Extractor returns the extractor used by the service.
func (s *Service) Extractor() *skills.Extractor {
	return s.extractor
}

// MatchText scores two raw texts without touching storage.
func (s *Service) MatchText(resumeText, jobText string) *Result {
	return s.score(s.extractor.Extract(resumeText), jobText)
}

func (s *Service) score(resumeSkills []vocabulary.Skill, jobText string) *Result {
	jobSkills := s.extractor.Extract(jobText)
	return &Result{
		ResumeSkills: resumeSkills,
		JobSkills:    jobSkills,
		Result:       skills.Score(resumeSkills, jobSkills),
	}
}

// Match loads a résumé and a job, scores them and stores the result when a
// sink is configured.
func (s *Service) Match(ctx context.Context, resumeID, jobID uuid.UUID) (*Result, error) {
	resume, err := s.resume(ctx, resumeID)
	if err != nil {
		return nil, err
	}
	job, err := s.source.JobDocument(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load job %s: %w", jobID, err)
	}
	if job == nil {
		return nil, fmt.Errorf("job %s: %w", jobID, ErrNotFound)
	}

	res := s.MatchText(resume.Text, job.Text)
	res.ResumeID, res.ResumeTitle = resume.ID, resume.Title
	res.JobID, res.JobTitle = job.ID, job.Title

	if s.sink != nil {
		id, err := s.sink.SaveMatch(ctx, res)
		if err != nil {
			return nil, fmt.Errorf("failed to save match: %w", err)
		}
		res.MatchID = id
	}

	logger.C(ctx).Debug().
		Str("resume_id", resumeID.String()).
		Str("job_id", jobID.String()).
		Float64("score", res.Score).
		Msg("match scored")
	return res, nil
}

// RankJobs scores one résumé against every stored job, best first. Ties are
// ordered by job title. limit <= 0 returns every job.
func (s *Service) RankJobs(ctx context.Context, resumeID uuid.UUID, limit int) ([]Result, error) {
	resume, err := s.resume(ctx, resumeID)
	if err != nil {
		return nil, err
	}
	jobs, err := s.source.JobDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load jobs: %w", err)
	}

	resumeSkills := s.extractor.Extract(resume.Text)
	results := make([]Result, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := s.score(resumeSkills, jobs[i].Text)
			res.ResumeID, res.ResumeTitle = resume.ID, resume.Title
			res.JobID, res.JobTitle = jobs[i].ID, jobs[i].Title
			results[i] = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(a, b int) bool {
		if results[a].Score != results[b].Score {
			return results[a].Score > results[b].Score
		}
		return results[a].JobTitle < results[b].JobTitle
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (s *Service) resume(ctx context.Context, id uuid.UUID) (*Document, error) {
	if s.source == nil {
		return nil, errors.New("matching: no text source configured")
	}
	doc, err := s.source.ResumeDocument(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load resume %s: %w", id, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("resume %s: %w", id, ErrNotFound)
	}
	return doc, nil
}
