package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/db"
)

const postingHTML = `<html><head><title>Careers | Acme</title></head><body>
<nav>Home Jobs About</nav>
<main>
  <h1>Backend Engineer</h1>
  <p>We are hiring a backend engineer to build services in Go and PostgreSQL.</p>
  <p>Experience with Docker and Kubernetes is required. You will own our REST API and help
  the team grow its CI/CD practice across several product lines.</p>
</main>
<footer>Copyright Acme</footer>
</body></html>`

func TestHandleCreateJob(t *testing.T) {
	store := newMockStore()
	s := newTestServer(t, store)

	w := do(t, s, jsonRequest(t, http.MethodPost, "/jobs", map[string]string{
		"title":       "  Go Developer ",
		"description": "Go, Docker and gRPC",
	}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	job := decodeJSON[db.Job](t, w)
	assert.NotEqual(t, uuid.Nil, job.ID)
	assert.Equal(t, "Go Developer", job.Title)
	assert.Empty(t, job.SourceURL)

	w = do(t, s, formRequest(http.MethodPost, "/jobs", url.Values{
		"title":       {"Data Engineer"},
		"description": {"Spark and Kafka"},
	}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Data Engineer", decodeJSON[db.Job](t, w).Title)

	assert.Len(t, store.jobs, 2)
}

func TestHandleCreateJob_Validation(t *testing.T) {
	s := newTestServer(t, newMockStore())

	tests := []struct {
		name      string
		body      map[string]string
		wantField string
	}{
		{name: "missing title", body: map[string]string{"description": "x"}, wantField: "Title"},
		{name: "missing description", body: map[string]string{"title": "x"}, wantField: "Description"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, jsonRequest(t, http.MethodPost, "/jobs", tt.body))
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, errorMessage(t, w), tt.wantField)
		})
	}
}

func TestHandleListAndGetJobs(t *testing.T) {
	store := newMockStore()
	seed := seedDemo(t, store)
	s := newTestServer(t, store)

	w := do(t, s, httptest.NewRequest(http.MethodGet, "/jobs", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeJSON[[]db.Job](t, w), len(db.DemoJobs))

	id := seed.jobIDs["Frontend Developer"]
	w = do(t, s, httptest.NewRequest(http.MethodGet, "/jobs/"+id.String(), nil))
	require.Equal(t, http.StatusOK, w.Code)
	job := decodeJSON[db.Job](t, w)
	assert.Equal(t, id, job.ID)
	assert.Equal(t, "Frontend Developer", job.Title)

	w = do(t, s, httptest.NewRequest(http.MethodGet, "/jobs/"+uuid.NewString(), nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "job not found", errorMessage(t, w))

	w = do(t, s, httptest.NewRequest(http.MethodGet, "/jobs/xyz", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleListJobs_Empty(t *testing.T) {
	s := newTestServer(t, newMockStore())

	w := do(t, s, httptest.NewRequest(http.MethodGet, "/jobs", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestHandleCreateJobFromURL(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(postingHTML))
	}))
	defer page.Close()

	store := newMockStore()
	s := newTestServer(t, store)

	w := do(t, s, jsonRequest(t, http.MethodPost, "/jobs/from-url", map[string]string{"url": page.URL}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decodeJSON[jobImportResponse](t, w)
	require.NotNil(t, resp.Job)
	assert.Equal(t, "Backend Engineer", resp.Title)
	assert.Equal(t, page.URL, resp.SourceURL)
	assert.Contains(t, resp.Description, "Go and PostgreSQL")
	assert.NotContains(t, resp.Description, "Copyright")
	require.NotNil(t, resp.Metadata)
	assert.Equal(t, "Backend Engineer", resp.Metadata.Title)
	assert.False(t, resp.Metadata.Rendered)

	stored, err := store.GetJob(t.Context(), resp.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, page.URL, stored.SourceURL)

	t.Run("title override", func(t *testing.T) {
		w := do(t, s, formRequest(http.MethodPost, "/jobs/from-url", url.Values{
			"url":   {page.URL},
			"title": {"Platform Engineer"},
		}))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, "Platform Engineer", decodeJSON[jobImportResponse](t, w).Title)
	})
}

func TestHandleCreateJobFromURL_Errors(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer failing.Close()

	s := newTestServer(t, newMockStore())

	tests := []struct {
		name       string
		url        string
		wantStatus int
	}{
		{name: "missing url", url: "", wantStatus: http.StatusBadRequest},
		{name: "not http", url: "ftp://example.com/job", wantStatus: http.StatusBadRequest},
		{name: "not a url", url: "job posting", wantStatus: http.StatusBadRequest},
		{name: "upstream failure", url: failing.URL, wantStatus: http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, jsonRequest(t, http.MethodPost, "/jobs/from-url", map[string]string{"url": tt.url}))
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}
