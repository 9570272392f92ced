// Package server provides the HTTP API for the portfolio content and its JSON Resume export.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/igegov/cv-portfolio/internal/config"
	"github.com/igegov/cv-portfolio/internal/content"
	"github.com/igegov/cv-portfolio/internal/db"
	"github.com/igegov/cv-portfolio/internal/server/middleware"
	"github.com/igegov/cv-portfolio/internal/server/ratelimit"
	"github.com/igegov/cv-portfolio/internal/types"
	"go.uber.org/zap"
)

// maxBodyBytes bounds request bodies for PUT /cv and POST /resume/validate.
const maxBodyBytes = 1 << 20

// ExportStore persists content snapshots and export history. *db.DB implements it.
type ExportStore interface {
	SaveSnapshot(ctx context.Context, cv *types.CVData, revision int) (uuid.UUID, error)
	RecordExport(ctx context.Context, in db.ExportInput) (*db.Export, error)
	GetExport(ctx context.Context, id uuid.UUID) (*db.Export, error)
	ListExports(ctx context.Context, limit int) ([]db.ExportSummary, error)
}

// Config holds server dependencies. Exports and Editor are optional.
type Config struct {
	Port      int
	Store     *content.Store
	Exports   ExportStore
	Editor    *config.EditorConfig
	Logger    *zap.Logger
	RateLimit *ratelimit.Config
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       *content.Store
	exports     ExportStore
	editor      *config.EditorConfig
	jwtService  *JWTService
	rateLimiter *ratelimit.Limiter
	validate    *validator.Validate
	logger      *zap.Logger

	snapMu   sync.Mutex
	snapRev  int
	snapshot uuid.UUID
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("content store is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	rl := cfg.RateLimit
	if rl == nil {
		rl = ratelimit.LoadConfig()
	}

	s := &Server{
		store:       cfg.Store,
		exports:     cfg.Exports,
		editor:      cfg.Editor,
		rateLimiter: ratelimit.NewLimiter(rl),
		validate:    validator.New(),
		logger:      logger,
	}
	if cfg.Editor.Enabled() {
		s.jwtService = NewJWTService(cfg.Editor)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("GET /cv", s.handleGetCV)
	mux.Handle("PUT /cv", s.requireEditor(http.HandlerFunc(s.handlePutCV)))
	mux.HandleFunc("POST /auth/login", s.handleLogin)

	mux.HandleFunc("GET /resume.json", s.handleResumeJSON)
	mux.HandleFunc("POST /resume/validate", s.handleValidateResume)

	mux.HandleFunc("GET /exports", s.handleListExports)
	mux.HandleFunc("GET /exports/{id}", s.handleGetExport)

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr),
			zap.Bool("editing", s.jwtService != nil), zap.Bool("history", s.exports != nil))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		s.rateLimiter.Stop()
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	defer s.rateLimiter.Stop()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// requireEditor rejects writes when editing is not configured, then checks the bearer token.
func (s *Server) requireEditor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.jwtService == nil {
			s.errorFrom(w, &ErrEditingDisabled{})
			return
		}
		middleware.RequireAuth(s.jwtService)(next).ServeHTTP(w, r)
	})
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Content-Revision, X-Export-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for request logs.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote", r.RemoteAddr),
		)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := s.rateLimiter.Allow(clientID(r), r.Method, r.URL.Path)
		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
		}
		if !info.Allowed {
			retry := int(info.RetryAfter.Seconds())
			if retry > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(retry))
			}
			s.logger.Warn("rate limit exceeded",
				zap.String("client", clientID(r)),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path))
			s.jsonResponse(w, http.StatusTooManyRequests, map[string]any{
				"error":       "rate_limit_exceeded",
				"retry_after": retry,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientID identifies the caller by remote IP.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// errorFrom writes err with the status HTTPStatus assigns it. Internal errors are logged
// and reported without detail.
func (s *Server) errorFrom(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
		s.errorResponse(w, status, "internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}
