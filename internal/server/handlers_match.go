package server

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/types"
)

// handleMatch scores a stored résumé against a stored job and saves the result.
// The score is reported at the precision it is stored with.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req types.MatchRequest
	err := decodeRequest(w, r, &req, func(form url.Values) {
		req.ResumeID = form.Get("resume_id")
		req.JobID = form.Get("job_id")
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	resumeID, jobID, err := req.IDs()
	if err != nil {
		writeError(w, r, &ErrValidation{Message: "resume_id and job_id must be UUIDs"})
		return
	}

	res, err := s.matcher.Match(r.Context(), resumeID, jobID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	jsonResponse(w, http.StatusOK, types.MatchResponse{
		MatchID:       res.MatchID,
		Score:         skills.RoundScore(res.Score),
		MatchedSkills: res.Matched,
		MissingSkills: res.Missing,
		ResumeTitle:   res.ResumeTitle,
		JobTitle:      res.JobTitle,
	})
}

// handleMatchText scores two raw texts without storing anything.
func (s *Server) handleMatchText(w http.ResponseWriter, r *http.Request) {
	var req types.MatchTextRequest
	err := decodeRequest(w, r, &req, func(form url.Values) {
		req.ResumeText = form.Get("resume_text")
		req.JobText = form.Get("job_text")
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	res := s.matcher.MatchText(req.ResumeText, req.JobText)
	jsonResponse(w, http.StatusOK, types.TextMatchResponse{
		Score:         res.Score,
		MatchedSkills: res.Matched,
		MissingSkills: res.Missing,
		ResumeSkills:  res.ResumeSkills,
		JobSkills:     res.JobSkills,
	})
}

// handleGetMatch returns the stored result for a résumé/job pair.
func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	resumeID, err := pathID(r, "resume_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	jobID, err := pathID(r, "job_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	m, err := s.store.GetMatch(r.Context(), resumeID, jobID)
	if err != nil {
		writeError(w, r, fmt.Errorf("failed to get match: %w", err))
		return
	}
	if m == nil {
		errorResponse(w, http.StatusNotFound, "match not found")
		return
	}

	jsonResponse(w, http.StatusOK, types.StoredMatchResponse{
		Score:         m.Score,
		MatchedSkills: m.MatchedSkills,
		MissingSkills: m.MissingSkills,
		AnalyzedAt:    m.AnalyzedAt,
	})
}
