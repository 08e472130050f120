// Package server provides the HTTP server that wires all services together.
package server

import (
	"context"
	"embed"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/partsearch/parts-search/internal/config"
	"github.com/partsearch/parts-search/internal/elastic"
	apperrors "github.com/partsearch/parts-search/internal/pkg/errors"
	"github.com/partsearch/parts-search/internal/pkg/logger"
	"github.com/partsearch/parts-search/internal/pkg/middleware"
	"github.com/partsearch/parts-search/internal/search"
)

//go:embed static
var staticFiles embed.FS

// Searcher runs a query end to end and returns the shaped response.
type Searcher interface {
	Search(ctx context.Context, query string) (*search.Response, error)
}

// Reindexer rebuilds the product index from the offers file.
type Reindexer interface {
	Reindex(ctx context.Context) (int, error)
}

// BrandLister exposes the known brand identifiers.
type BrandLister interface {
	BrandIDs() []string
}

// Server is the main HTTP server.
type Server struct {
	cfg      *config.Config
	log      *logger.Logger
	searcher Searcher
	importer Reindexer
	brands   BrandLister
	es       *elasticsearch.Client
	limiter  *middleware.RateLimiter

	httpServer *http.Server

	mu      sync.Mutex
	started bool
}

// New creates a server over already constructed services.
func New(cfg *config.Config, searcher Searcher, importer Reindexer, brands BrandLister, es *elasticsearch.Client, log *logger.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		log:      log.WithComponent("server"),
		searcher: searcher,
		importer: importer,
		brands:   brands,
		es:       es,
	}
	if cfg.Security.RateLimit > 0 {
		rlCfg := middleware.DefaultRateLimiterConfig()
		rlCfg.RequestsPerSecond = float64(cfg.Security.RateLimit)
		rlCfg.Burst = cfg.Security.RateLimit * 2
		s.limiter = middleware.NewRateLimiter(rlCfg)
	}
	return s
}

// Start runs the HTTP server until it is stopped.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return fmt.Errorf("server already started")
	}
	s.started = true

	addr := s.cfg.Address()
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	s.mu.Unlock()

	s.log.Info("starting HTTP server", "addr", addr)
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.log.WithError(err).Error("HTTP shutdown error")
		return err
	}

	s.started = false
	s.log.Info("server stopped")
	return nil
}

// Handler builds the full route tree with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", s.handleSearch)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/reindex", s.handleReindex)
	mux.HandleFunc("/brands", s.handleBrands)
	mux.HandleFunc("/", s.handleIndex)

	var handler http.Handler = mux
	if s.limiter != nil {
		handler = s.limiter.Middleware(handler)
	}
	handler = corsMiddleware(handler)
	return s.withLogging(handler)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query := r.URL.Query().Get("q")
	if err := search.Validate(query); err != nil {
		apperrors.WriteError(w, err)
		return
	}

	resp, err := s.searcher.Search(r.Context(), query)
	if err != nil {
		s.log.WithQuery(query).WithError(err).Error("search failed")
		apperrors.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	status := "ok"
	httpStatus := http.StatusOK
	docs, err := elastic.Count(r.Context(), s.es, s.cfg.Elastic.Index)
	if err != nil {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, map[string]any{
		"status":    status,
		"index":     s.cfg.Elastic.Index,
		"documents": docs,
		"empty":     docs == 0,
	})
}

func (s *Server) handleReindex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	indexed, err := s.importer.Reindex(r.Context())
	if err != nil {
		s.log.WithError(err).Error("reindex failed")
		apperrors.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"indexed": indexed})
}

func (s *Server) handleBrands(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ids := s.brands.BrandIDs()
	writeJSON(w, http.StatusOK, map[string]any{
		"brands": ids,
		"count":  len(ids),
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	page, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "page unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (w *responseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		s.log.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration", time.Since(start),
		)
	})
}
