// Package server provides the HTTP REST API for the resume matcher.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/fetch"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/matching"
	"github.com/jonathan/resume-matcher/internal/server/middleware"
	"github.com/jonathan/resume-matcher/internal/server/ratelimit"
	"github.com/jonathan/resume-matcher/internal/skills"
)

// Store is the persistence the API needs. *db.DB implements it.
type Store interface {
	UserStore
	matching.TextSource
	matching.ResultSink

	CreateResume(ctx context.Context, userID uuid.UUID, filename, text string) (*db.Resume, error)
	GetResume(ctx context.Context, id uuid.UUID) (*db.Resume, error)
	ListResumes(ctx context.Context, filters db.ListFilters) ([]db.Resume, error)

	CreateJob(ctx context.Context, title, description, sourceURL string) (*db.Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (*db.Job, error)
	ListJobs(ctx context.Context, filters db.ListFilters) ([]db.Job, error)

	GetMatch(ctx context.Context, resumeID, jobID uuid.UUID) (*db.Match, error)
	Ping(ctx context.Context) error
}

var _ Store = (*db.DB)(nil)

// Server represents the HTTP server
type Server struct {
	cfg         *config.Config
	store       Store
	matcher     *matching.Service
	urlOptions  *ingestion.URLOptions
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	authHandler *AuthHandler
	handler     http.Handler
	httpServer  *http.Server
	log         *logger.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithURLOptions overrides how job posting URLs are fetched.
func WithURLOptions(opts *ingestion.URLOptions) Option {
	return func(s *Server) { s.urlOptions = opts }
}

// New creates a new server instance. A nil extractor uses the built-in vocabulary.
func New(cfg *config.Config, store Store, extractor *skills.Extractor, opts ...Option) (*Server, error) {
	passwordConfig, err := config.NewPasswordConfig(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	jwtConfig, err := config.NewJWTConfig(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	s := &Server{
		cfg:         cfg,
		store:       store,
		matcher:     matching.NewService(extractor, store, matching.WithSink(store)),
		rateLimiter: ratelimit.NewLimiter(ratelimit.FromSettings(cfg.RateLimit)),
		jwtService:  NewJWTService(jwtConfig),
		log:         logger.Named("server"),
	}
	s.authHandler = NewAuthHandler(NewUserService(store, passwordConfig), s.jwtService)

	s.urlOptions = &ingestion.URLOptions{}
	if cfg.UseBrowser {
		s.urlOptions.Render = fetch.BrowserRenderer
	}
	for _, opt := range opts {
		opt(s)
	}

	if jwtConfig.Ephemeral {
		s.log.Warn().Msg("JWT_SECRET not set, using a per-process secret; tokens will not survive a restart")
	}

	requireAuth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	optionalAuth := middleware.OptionalAuth(s.jwtService.AsTokenValidator())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)

	// Accounts
	mux.HandleFunc("POST /users", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.Handle("GET /users/me", requireAuth(http.HandlerFunc(s.authHandler.Me)))
	mux.Handle("PUT /users/me/password", requireAuth(http.HandlerFunc(s.authHandler.UpdatePassword)))

	// Résumés
	mux.Handle("POST /upload_resume", optionalAuth(http.HandlerFunc(s.handleUploadResume)))
	mux.HandleFunc("GET /resumes", s.handleListResumes)
	mux.HandleFunc("GET /resumes/{id}", s.handleGetResume)
	mux.HandleFunc("GET /resumes/{id}/skills", s.handleResumeSkills)
	mux.HandleFunc("GET /resumes/{id}/rankings", s.handleResumeRankings)

	// Jobs
	mux.HandleFunc("POST /jobs", s.handleCreateJob)
	mux.HandleFunc("POST /jobs/from-url", s.handleCreateJobFromURL)
	mux.HandleFunc("GET /jobs", s.handleListJobs)
	mux.HandleFunc("GET /jobs/{id}", s.handleGetJob)

	// Matching
	mux.HandleFunc("POST /match", s.handleMatch)
	mux.HandleFunc("POST /match/text", s.handleMatchText)
	mux.HandleFunc("GET /match/{resume_id}/{job_id}", s.handleGetMatch)

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	})
	s.handler = s.withLogging(corsHandler(s.withRateLimit(mux)))

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      90 * time.Second, // job URL imports may render with a browser
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.rateLimiter.Stop()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info().Msg("server stopped")
	return nil
}

// Close releases background resources without serving.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging assigns a request id and writes one access log line per request.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		r = r.WithContext(logger.WithRequestID(r.Context(), requestID))

		m := httpsnoop.CaptureMetrics(next, w, r)

		event := logger.C(r.Context()).Info()
		if m.Code >= http.StatusInternalServerError {
			event = logger.C(r.Context()).Error()
		}
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", m.Code).
			Int64("bytes", m.Written).
			Dur("duration", m.Duration).
			Str("remote", clientID(r)).
			Msg("request")
	})
}

// handleRoot reports that the API is up.
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"message": "Resume Matcher Backend is running"})
}

// handleHealth returns server health status, including database reachability.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		logger.C(r.Context()).Warn().Err(err).Msg("health check failed")
		jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// clientID identifies the caller by the IP in RemoteAddr.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		retry := max(int(info.RetryAfter.Round(time.Second).Seconds()), 1)
		response["retry_after"] = retry
		w.Header().Set("Retry-After", strconv.Itoa(retry))
	}

	logger.C(r.Context()).Warn().
		Str("client", clientID(r)).
		Str("path", r.URL.Path).
		Int("limit", info.Limit).
		Msg("rate limit exceeded")

	jsonResponse(w, http.StatusTooManyRequests, response)
}
