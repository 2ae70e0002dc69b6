package matching

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/vocabulary"
)

const (
	seedResume = "Experienced Python developer with 5 years of experience in web development using " +
		"Django and Flask. Proficient in SQL, JavaScript, and React. Experience with Docker and AWS. " +
		"Strong background in machine learning with scikit-learn and pandas. Familiar with Git, Linux, " +
		"and REST API development."
	seedJob = "Looking for a senior Python developer with experience in Django, Flask, SQL, and cloud " +
		"technologies like AWS. Knowledge of Docker and CI/CD is a plus. Must have experience with Git " +
		"and Linux environments."
)

type fakeSource struct {
	resumes map[uuid.UUID]Document
	jobs    []Document
	err     error
}

func (f *fakeSource) ResumeDocument(_ context.Context, id uuid.UUID) (*Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	doc, ok := f.resumes[id]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

func (f *fakeSource) JobDocument(_ context.Context, id uuid.UUID) (*Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, j := range f.jobs {
		if j.ID == id {
			return &j, nil
		}
	}
	return nil, nil
}

func (f *fakeSource) JobDocuments(context.Context) ([]Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.jobs, nil
}

type fakeSink struct {
	mu    sync.Mutex
	saved []*Result
	err   error
}

func (f *fakeSink) SaveMatch(_ context.Context, r *Result) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return uuid.Nil, f.err
	}
	f.saved = append(f.saved, r)
	return uuid.New(), nil
}

func newSource() (*fakeSource, uuid.UUID) {
	resumeID := uuid.New()
	return &fakeSource{
		resumes: map[uuid.UUID]Document{
			resumeID: {ID: resumeID, Title: "Python Developer Resume", Text: seedResume},
		},
		jobs: []Document{
			{ID: uuid.New(), Title: "Senior Python Developer", Text: seedJob},
			{ID: uuid.New(), Title: "Frontend Developer", Text: "React, TypeScript, HTML and CSS."},
			{ID: uuid.New(), Title: "Data Scientist", Text: "Python, pandas, machine learning, scikit-learn."},
			{ID: uuid.New(), Title: "Barista", Text: "Make great coffee."},
			{ID: uuid.New(), Title: "Analyst", Text: "Make great coffee."},
		},
	}, resumeID
}

func TestMatchText_SeedScenario(t *testing.T) {
	svc := NewService(nil, nil)
	res := svc.MatchText(seedResume, seedJob)

	assert.Equal(t, []vocabulary.Skill{"python", "django", "flask", "sql", "aws", "docker", "git", "linux"}, res.Matched)
	assert.Equal(t, []vocabulary.Skill{"ci/cd"}, res.Missing)
	assert.InDelta(t, 800.0/9.0, res.Score, 1e-9)
	assert.Len(t, res.JobSkills, 9)
	assert.Contains(t, res.ResumeSkills, vocabulary.Skill("scikit-learn"))
}

func TestMatchText_Empty(t *testing.T) {
	res := NewService(nil, nil).MatchText("", "")
	assert.Zero(t, res.Score)
	assert.NotNil(t, res.Matched)
	assert.NotNil(t, res.Missing)
	assert.Empty(t, res.JobSkills)
}

func TestMatchText_CustomExtractor(t *testing.T) {
	vocab := vocabulary.MustNew([]vocabulary.Entry{
		{Skill: "forklift"},
		{Skill: "first aid", Aliases: []string{"cpr"}},
	})
	svc := NewService(skills.NewExtractor(vocab), nil)

	res := svc.MatchText("Certified in CPR.", "Forklift license and first aid required.")
	assert.Equal(t, []vocabulary.Skill{"first aid"}, res.Matched)
	assert.Equal(t, []vocabulary.Skill{"forklift"}, res.Missing)
	assert.Equal(t, 50.0, res.Score)
	assert.Same(t, svc.Extractor(), svc.extractor)
}

func TestMatch_LoadsAndSaves(t *testing.T) {
	src, resumeID := newSource()
	sink := &fakeSink{}
	svc := NewService(nil, src, WithSink(sink))

	job := src.jobs[0]
	res, err := svc.Match(context.Background(), resumeID, job.ID)
	require.NoError(t, err)

	assert.Equal(t, resumeID, res.ResumeID)
	assert.Equal(t, job.ID, res.JobID)
	assert.Equal(t, "Python Developer Resume", res.ResumeTitle)
	assert.Equal(t, "Senior Python Developer", res.JobTitle)
	assert.InDelta(t, 800.0/9.0, res.Score, 1e-9)
	assert.NotEqual(t, uuid.Nil, res.MatchID)

	require.Len(t, sink.saved, 1)
	assert.Same(t, res, sink.saved[0])
}

func TestMatch_WithoutSink(t *testing.T) {
	src, resumeID := newSource()
	res, err := NewService(nil, src).Match(context.Background(), resumeID, src.jobs[1].ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, res.MatchID)
}

func TestMatch_NotFound(t *testing.T) {
	src, resumeID := newSource()
	svc := NewService(nil, src)

	_, err := svc.Match(context.Background(), uuid.New(), src.jobs[0].ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "resume")

	_, err = svc.Match(context.Background(), resumeID, uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "job")
}

func TestMatch_Errors(t *testing.T) {
	src, resumeID := newSource()
	boom := errors.New("connection reset")

	_, err := NewService(nil, src, WithSink(&fakeSink{err: boom})).Match(context.Background(), resumeID, src.jobs[0].ID)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to save match")

	src.err = boom
	_, err = NewService(nil, src).Match(context.Background(), resumeID, src.jobs[0].ID)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)

	_, err = NewService(nil, nil).Match(context.Background(), resumeID, uuid.New())
	assert.Error(t, err)
}

func TestRankJobs(t *testing.T) {
	src, resumeID := newSource()
	svc := NewService(nil, src, WithWorkers(2))

	ranked, err := svc.RankJobs(context.Background(), resumeID, 0)
	require.NoError(t, err)
	require.Len(t, ranked, len(src.jobs))

	assert.Equal(t, "Data Scientist", ranked[0].JobTitle)
	assert.Equal(t, 100.0, ranked[0].Score)
	assert.Equal(t, "Senior Python Developer", ranked[1].JobTitle)

	for i := 1; i < len(ranked); i++ {
		prev, cur := ranked[i-1], ranked[i]
		assert.GreaterOrEqual(t, prev.Score, cur.Score)
		if prev.Score == cur.Score {
			assert.LessOrEqual(t, prev.JobTitle, cur.JobTitle)
		}
		assert.Equal(t, resumeID, cur.ResumeID)
	}

	// Zero-score ties fall back to title order.
	last := ranked[len(ranked)-2:]
	assert.Equal(t, "Analyst", last[0].JobTitle)
	assert.Equal(t, "Barista", last[1].JobTitle)
}

func TestRankJobs_Limit(t *testing.T) {
	src, resumeID := newSource()
	ranked, err := NewService(nil, src).RankJobs(context.Background(), resumeID, 2)
	require.NoError(t, err)
	assert.Len(t, ranked, 2)
}

func TestRankJobs_ManyJobs(t *testing.T) {
	src, resumeID := newSource()
	src.jobs = nil
	for i := 0; i < 200; i++ {
		src.jobs = append(src.jobs, Document{ID: uuid.New(), Title: fmt.Sprintf("job-%03d", i), Text: seedJob})
	}

	ranked, err := NewService(nil, src, WithWorkers(8)).RankJobs(context.Background(), resumeID, 0)
	require.NoError(t, err)
	require.Len(t, ranked, 200)
	for i, r := range ranked {
		assert.InDelta(t, 800.0/9.0, r.Score, 1e-9)
		assert.Equal(t, fmt.Sprintf("job-%03d", i), r.JobTitle)
	}
}

func TestRankJobs_Errors(t *testing.T) {
	src, _ := newSource()
	_, err := NewService(nil, src).RankJobs(context.Background(), uuid.New(), 0)
	assert.ErrorIs(t, err, ErrNotFound)

	src, resumeID := newSource()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewService(nil, src).RankJobs(ctx, resumeID, 0)
	assert.ErrorIs(t, err, context.Canceled)
}
