// Package server renders the ATS screening UI over HTTP and forwards uploads
// to the analysis backend.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/ats-ui/internal/backend"
	"github.com/jonathan/ats-ui/internal/observability"
	"github.com/jonathan/ats-ui/internal/reportstore"
	"github.com/jonathan/ats-ui/internal/server/ratelimit"
	"github.com/jonathan/ats-ui/internal/types"
	"github.com/jonathan/ats-ui/internal/upload"
)

// Backend is the part of the backend client the UI needs.
type Backend interface {
	AnalyzeResume(ctx context.Context, resume upload.File) (*types.AnalysisReport, error)
	MatchJobDescription(ctx context.Context, resume upload.File, jobDescription string) (*types.AnalysisReport, error)
	BulkAnalyze(ctx context.Context, resumes []upload.File, jobDescriptions upload.File) (*types.BulkReport, error)

	ListMatches(ctx context.Context) ([]types.ResumeMatch, error)
	MatchesForJD(ctx context.Context, jdIndex int) ([]types.ResumeMatch, error)
	Statistics(ctx context.Context) (*types.MatchStatistics, error)
	BestMatches(ctx context.Context) ([]types.ResumeMatch, error)
	ClearMatches(ctx context.Context) error
	DownloadBestMatch(ctx context.Context, jdIndex int) (*backend.Download, error)

	ProcessRename(ctx context.Context, file upload.File, req types.RenameRequest) (*types.RenameResult, error)
	DownloadRenamed(ctx context.Context, file upload.File, req types.RenameRequest) (*backend.Download, error)
	DownloadResume(ctx context.Context, name, newName, content string) (*backend.Download, error)

	Health(ctx context.Context) (*types.HealthStatus, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	backend     Backend
	reports     *reportstore.Store
	rateLimiter *ratelimit.Limiter
	metrics     *observability.Metrics
	logger      *zap.Logger
	views       *views
}

// Options holds server dependencies. Backend is required; the rest default.
type Options struct {
	Port        int
	Backend     Backend
	Reports     *reportstore.Store
	RateLimiter *ratelimit.Limiter
	Metrics     *observability.Metrics
	Logger      *zap.Logger
}

// New creates a new server instance
func New(opts Options) (*Server, error) {
	if opts.Backend == nil {
		return nil, errors.New("server requires a backend")
	}

	v, err := loadViews()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	s := &Server{
		backend:     opts.Backend,
		reports:     opts.Reports,
		rateLimiter: opts.RateLimiter,
		metrics:     opts.Metrics,
		logger:      opts.Logger,
		views:       v,
	}
	if s.reports == nil {
		s.reports = reportstore.New(reportstore.DefaultConfig())
	}
	if s.rateLimiter == nil {
		s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())
	}
	if s.metrics == nil {
		s.metrics = observability.NewMetrics()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /analyze", s.handleAnalyze)

	// Result pages
	mux.HandleFunc("GET /report/{id}", s.handleReport)
	mux.HandleFunc("GET /bulk-jd-report/{id}", s.handleBulkReport)
	mux.HandleFunc("GET /bulk-jd-report/{id}/excel", s.handleBulkExcel)
	mux.HandleFunc("GET /bulk-jd-report/{id}/resume/{jdIndex}", s.handleBulkResume)

	// Match manager
	mux.HandleFunc("GET /matches", s.handleMatches)
	mux.HandleFunc("POST /matches/clear", s.handleClearMatches)
	mux.HandleFunc("GET /matches/best/{jdIndex}/download", s.handleBestMatchDownload)

	// File renamer
	mux.HandleFunc("GET /rename", s.handleRenameForm)
	mux.HandleFunc("POST /rename", s.handleRename)

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())
	mux.Handle("GET /static/", http.FileServerFS(assets))

	s.handler = s.withRateLimit(s.withLogging(s.withMetrics(s.withRecovery(mux))))

	port := opts.Port
	if port == 0 {
		port = 3000
	}
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Bulk analysis can take minutes
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.Close()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// Close stops the background cleanup of the rate limiter and report store.
func (s *Server) Close() {
	s.rateLimiter.Stop()
	s.reports.Stop()
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("error encoding JSON response", zap.Error(err))
	}
}

// extractClientID extracts the client identifier (IP address) from the request.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		// Round up so clients never retry early.
		retry := int((info.RetryAfter + time.Second - 1) / time.Second)
		response["retry_after"] = retry
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retry))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("client", s.extractClientID(r)),
		zap.String("path", r.URL.Path),
		zap.Int("limit", info.Limit),
		zap.Time("reset", info.ResetTime))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
