package server

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/server/middleware"
	"github.com/jonathan/resume-matcher/internal/types"
)

// multipartMemory is how much of an upload is buffered in memory before
// spilling to a temp file.
const multipartMemory = 8 << 20

// handleUploadResume stores an uploaded résumé file and its extracted text.
// The owner is the authenticated user, else the user_id form field, else the
// demo user.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes())
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		writeError(w, r, formError(err))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("resume")
	if err != nil {
		writeError(w, r, &ErrValidation{Field: "resume", Message: "file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, fmt.Errorf("failed to read upload: %w", err))
		return
	}

	ownerID, err := s.uploadOwner(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	filename := uploadName(header.Filename)
	path, err := s.saveUpload(filename, data)
	if err != nil {
		writeError(w, r, err)
		return
	}

	text, meta := ingestion.IngestUpload(filename, data)
	resume, err := s.store.CreateResume(r.Context(), ownerID, filename, text)
	if err != nil {
		if rmErr := os.Remove(path); rmErr != nil {
			logger.C(r.Context()).Warn().Err(rmErr).Str("path", path).Msg("failed to remove orphaned upload")
		}
		writeError(w, r, fmt.Errorf("failed to store resume: %w", err))
		return
	}

	logger.C(r.Context()).Info().
		Str("resume_id", resume.ID.String()).
		Str("filename", filename).
		Str("format", string(meta.Format)).
		Int("chars", meta.Chars).
		Bool("placeholder", meta.Placeholder).
		Msg("resume uploaded")

	jsonResponse(w, http.StatusOK, types.UploadResponse{
		Filename:    filename,
		ResumeID:    resume.ID,
		Status:      "uploaded",
		Placeholder: meta.Placeholder,
	})
}

// uploadOwner picks the user a new résumé belongs to.
func (s *Server) uploadOwner(r *http.Request) (uuid.UUID, error) {
	if id, err := middleware.GetUserID(r); err == nil {
		return id, nil
	}

	if v := strings.TrimSpace(r.FormValue("user_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return uuid.Nil, &ErrValidation{Field: "user_id", Message: "must be a UUID"}
		}
		u, err := s.store.GetUser(r.Context(), id)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to get user: %w", err)
		}
		if u == nil {
			return uuid.Nil, &ErrUserNotFound{UserID: id}
		}
		return id, nil
	}

	demo, err := s.store.GetUserByEmail(r.Context(), db.DemoUserEmail)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to get demo user: %w", err)
	}
	if demo == nil {
		return uuid.Nil, &ErrValidation{Field: "user_id", Message: "required when no demo user is seeded"}
	}
	return demo.ID, nil
}

// uploadName reduces a client-supplied filename to its base name.
func uploadName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == "/" || name == "" {
		return "resume"
	}
	return name
}

// saveUpload keeps a copy of the raw upload under UploadDir and returns its path.
func (s *Server) saveUpload(filename string, data []byte) (string, error) {
	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}
	path := filepath.Join(s.cfg.UploadDir, uuid.NewString()+"-"+filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to save upload: %w", err)
	}
	return path, nil
}

// handleListResumes lists résumés, newest first.
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	filters, err := listFilters(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resumes, err := s.store.ListResumes(r.Context(), filters)
	if err != nil {
		writeError(w, r, fmt.Errorf("failed to list resumes: %w", err))
		return
	}
	if resumes == nil {
		resumes = []db.Resume{}
	}
	jsonResponse(w, http.StatusOK, resumes)
}

// handleGetResume returns one résumé with its text.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	resume, ok := s.loadResume(w, r)
	if !ok {
		return
	}
	jsonResponse(w, http.StatusOK, resume)
}

// handleResumeSkills lists the vocabulary skills found in a résumé.
func (s *Server) handleResumeSkills(w http.ResponseWriter, r *http.Request) {
	resume, ok := s.loadResume(w, r)
	if !ok {
		return
	}
	jsonResponse(w, http.StatusOK, types.SkillsResponse{
		ResumeID: resume.ID,
		Skills:   s.matcher.Extractor().Extract(resume.Text),
	})
}

// handleResumeRankings scores a résumé against every job, best first.
func (s *Server) handleResumeRankings(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	limit, err := intParam(r.URL.Query(), "limit")
	if err != nil {
		writeError(w, r, err)
		return
	}

	results, err := s.matcher.RankJobs(r.Context(), id, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := types.RankingResponse{ResumeID: id, Jobs: make([]types.RankedJob, len(results))}
	for i, res := range results {
		resp.Jobs[i] = types.RankedJob{
			JobID:         res.JobID,
			JobTitle:      res.JobTitle,
			Score:         res.Score,
			MatchedSkills: res.Matched,
			MissingSkills: res.Missing,
		}
	}
	jsonResponse(w, http.StatusOK, resp)
}

// loadResume fetches the résumé named by the id path value, writing the
// error response itself when that fails.
func (s *Server) loadResume(w http.ResponseWriter, r *http.Request) (*db.Resume, bool) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	resume, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		writeError(w, r, fmt.Errorf("failed to get resume: %w", err))
		return nil, false
	}
	if resume == nil {
		errorResponse(w, http.StatusNotFound, "resume not found")
		return nil, false
	}
	return resume, true
}
