package ingestion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestFromURL_InvalidURL(t *testing.T) {
	for _, u := range []string{"", "not-a-url", "example.com", "http://"} {
		_, _, err := IngestFromURL(context.Background(), u, nil)
		assert.ErrorIs(t, err, ErrInvalidURL, u)
	}
}

func TestIngestFromURL_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Backend Engineer</title></head><body>
<nav>Nav</nav>
<main><h1>Backend Engineer</h1><p>Go,   PostgreSQL and Redis.</p><ul><li>Docker</li></ul></main>
<footer>Footer</footer></body></html>`))
	}))
	defer srv.Close()

	text, meta, err := IngestFromURL(context.Background(), srv.URL, nil)
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer\nGo, PostgreSQL and Redis.\nDocker", text)
	assert.Equal(t, "Backend Engineer", meta.Title)
	assert.Equal(t, srv.URL, meta.Source)
	assert.Equal(t, "unknown", meta.Platform)
	assert.False(t, meta.Rendered)
}

func TestIngestFromURL_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, _, err := IngestFromURL(context.Background(), srv.URL, nil)
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)
}

func TestIngestFromURL_EmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div id="root"></div></body></html>`))
	}))
	defer srv.Close()

	_, _, err := IngestFromURL(context.Background(), srv.URL, nil)
	assert.ErrorIs(t, err, ErrContentExtractionFailed)
}

func TestIngestFromURL_BrowserFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div id="root">Loading</div></body></html>`))
	}))
	defer srv.Close()

	long := strings.Repeat("Kubernetes and Terraform. ", 30)
	var renderedURL string
	render := func(_ context.Context, url string) (string, error) {
		renderedURL = url
		return `<html><head><meta property="og:title" content="SRE"></head><body><main><p>` + long + `</p></main></body></html>`, nil
	}

	text, meta, err := IngestFromURL(context.Background(), srv.URL, &URLOptions{Render: render})
	require.NoError(t, err)
	assert.Equal(t, srv.URL, renderedURL)
	assert.True(t, meta.Rendered)
	assert.Equal(t, "SRE", meta.Title)
	assert.Contains(t, text, "Kubernetes and Terraform.")
}

func TestIngestFromURL_BrowserFailureKeepsHTTPText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><main>Short Go posting</main></body></html>`))
	}))
	defer srv.Close()

	render := func(context.Context, string) (string, error) {
		return "", errors.New("chrome not installed")
	}

	text, meta, err := IngestFromURL(context.Background(), srv.URL, &URLOptions{Render: render})
	require.NoError(t, err)
	assert.Equal(t, "Short Go posting", text)
	assert.False(t, meta.Rendered)
}
