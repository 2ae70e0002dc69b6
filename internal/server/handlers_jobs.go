package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/types"
)

// untitledJob names imported postings whose page has no title.
const untitledJob = "Untitled job"

// jobImportResponse is a job created from a URL, with what was learned
// about the page.
type jobImportResponse struct {
	*db.Job
	Metadata *ingestion.Metadata `json:"metadata"`
}

// handleCreateJob adds a job posting from title and description.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req types.CreateJobRequest
	err := decodeRequest(w, r, &req, func(form url.Values) {
		req.Title = form.Get("title")
		req.Description = form.Get("description")
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	job, err := s.store.CreateJob(r.Context(), strings.TrimSpace(req.Title), req.Description, "")
	if err != nil {
		writeError(w, r, fmt.Errorf("failed to create job: %w", err))
		return
	}
	jsonResponse(w, http.StatusCreated, job)
}

// handleCreateJobFromURL fetches a job posting page and stores its text.
func (s *Server) handleCreateJobFromURL(w http.ResponseWriter, r *http.Request) {
	var req types.JobFromURLRequest
	err := decodeRequest(w, r, &req, func(form url.Values) {
		req.URL = form.Get("url")
		req.Title = form.Get("title")
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	text, meta, err := ingestion.IngestFromURL(r.Context(), req.URL, s.urlOptions)
	if err != nil {
		writeError(w, r, err)
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = meta.Title
	}
	if title == "" {
		title = untitledJob
	}

	job, err := s.store.CreateJob(r.Context(), title, text, req.URL)
	if err != nil {
		writeError(w, r, fmt.Errorf("failed to create job: %w", err))
		return
	}

	logger.C(r.Context()).Info().
		Str("job_id", job.ID.String()).
		Str("platform", meta.Platform).
		Bool("rendered", meta.Rendered).
		Msg("job imported")

	jsonResponse(w, http.StatusCreated, jobImportResponse{Job: job, Metadata: meta})
}

// handleListJobs lists job postings, newest first.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	filters, err := listFilters(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	jobs, err := s.store.ListJobs(r.Context(), filters)
	if err != nil {
		writeError(w, r, fmt.Errorf("failed to list jobs: %w", err))
		return
	}
	if jobs == nil {
		jobs = []db.Job{}
	}
	jsonResponse(w, http.StatusOK, jobs)
}

// handleGetJob returns one job posting.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	job, err := s.store.GetJob(r.Context(), id)
	if err != nil {
		writeError(w, r, fmt.Errorf("failed to get job: %w", err))
		return
	}
	if job == nil {
		errorResponse(w, http.StatusNotFound, "job not found")
		return
	}
	jsonResponse(w, http.StatusOK, job)
}
