package db

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathan/resume-matcher/internal/matching"
)

// ResumeDocument implements matching.TextSource.
func (db *DB) ResumeDocument(ctx context.Context, id uuid.UUID) (*matching.Document, error) {
	r, err := db.GetResume(ctx, id)
	if err != nil || r == nil {
		return nil, err
	}
	return &matching.Document{ID: r.ID, Title: r.Title(), Text: r.Text}, nil
}

// JobDocument implements matching.TextSource.
func (db *DB) JobDocument(ctx context.Context, id uuid.UUID) (*matching.Document, error) {
	j, err := db.GetJob(ctx, id)
	if err != nil || j == nil {
		return nil, err
	}
	return &matching.Document{ID: j.ID, Title: j.Title, Text: j.Description}, nil
}

// JobDocuments implements matching.TextSource.
func (db *DB) JobDocuments(ctx context.Context) ([]matching.Document, error) {
	jobs, err := db.allJobs(ctx)
	if err != nil {
		return nil, err
	}
	docs := make([]matching.Document, len(jobs))
	for i, j := range jobs {
		docs[i] = matching.Document{ID: j.ID, Title: j.Title, Text: j.Description}
	}
	return docs, nil
}

var (
	_ matching.TextSource = (*DB)(nil)
	_ matching.ResultSink = (*DB)(nil)
)
