// Package server exposes the sheet sync over HTTP: a status page, a trigger
// that runs one pass and renders the report, and a streaming variant.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jonathan/jobsheet-sync/internal/server/ratelimit"
	"github.com/jonathan/jobsheet-sync/internal/syncer"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	syncer      *syncer.Syncer
	rateLimiter *ratelimit.Limiter
	sheetLabel  string

	// runs collapses concurrent GET /process calls into one pass; runMu
	// keeps a streamed run and a page run from touching the sheet at once.
	runs  singleflight.Group
	runMu sync.Mutex

	// baseCtx outlives individual requests so a shared run is not cut short
	// when the caller that started it disconnects.
	baseCtx    context.Context
	cancelBase context.CancelFunc
}

// Config holds server configuration
type Config struct {
	Port      int
	Syncer    *syncer.Syncer
	RateLimit *ratelimit.Config
	// SheetLabel is shown on the status page, e.g. the sheet tab name.
	SheetLabel string
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Syncer == nil {
		return nil, fmt.Errorf("server requires a syncer")
	}

	baseCtx, cancel := context.WithCancel(context.Background())
	s := &Server{
		syncer:      cfg.Syncer,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		sheetLabel:  cfg.SheetLabel,
		baseCtx:     baseCtx,
		cancelBase:  cancel,
	}

	s.httpServer = &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Port),
		Handler:     s.Handler(),
		ReadTimeout: 30 * time.Second,
		// a pass sleeps between rows, so a large sheet takes minutes
		WriteTimeout: 30 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /process", s.handleProcess)
	mux.HandleFunc("POST /process/stream", s.handleProcessStream)
	mux.HandleFunc("GET /health", s.handleHealth)

	return s.withLogging(s.withRateLimit(mux))
}

// Start listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("[server] listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		s.close()
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("[server] shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// stop in-flight runs first; their rows stay pending for the next pass
	s.cancelBase()
	err := s.httpServer.Shutdown(shutdownCtx)
	s.close()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("[server] stopped")
	return nil
}

func (s *Server) close() {
	s.cancelBase()
	s.rateLimiter.Stop()
}

// withRateLimit rejects trigger requests over the per-client limit
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[server] %s %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[server] %s %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[server] error encoding JSON response: %v", err)
	}
}

// clientID keys the rate limiter by remote IP.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 with the time to retry.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	retry := int(info.RetryAfter.Round(time.Second).Seconds())
	if retry < 1 {
		retry = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(retry))

	log.Printf("[rate-limit] limit exceeded: limit=%d retry_after=%ds", info.Limit, retry)

	s.jsonResponse(w, http.StatusTooManyRequests, map[string]any{
		"error":       "rate_limit_exceeded",
		"message":     "Too many sync requests. Please try again later.",
		"limit":       info.Limit,
		"retry_after": retry,
	})
}
