// Package server exposes the deal finder over HTTP: a small search form, a
// JSON API, and a health endpoint.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/kwisener01/re-onmarket/internal/dealfinder"
	"github.com/kwisener01/re-onmarket/internal/store"
)

// Workflow runs one deal search. Satisfied by *dealfinder.Finder.
type Workflow interface {
	FindDeals(ctx context.Context, criteria dealfinder.Criteria) (*dealfinder.Results, error)
}

// Server hosts the HTTP front end. The store is optional; when present every
// search is persisted as a run.
type Server struct {
	finder Workflow
	store  store.Store
	port   int
}

// New creates a Server. st may be nil.
func New(finder Workflow, st store.Store, port int) *Server {
	return &Server{finder: finder, store: st, port: port}
}

// Router builds the chi handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/", s.handleIndex)
	r.Post("/search", s.handleFormSearch)
	r.Post("/api/search", s.handleAPISearch)
	r.Get("/health", s.handleHealth)

	return r
}

// Run serves until the context is cancelled or SIGINT/SIGTERM arrives, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute, // searches make many upstream calls
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("server: listening", zap.Int("port", s.port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return eris.Wrap(err, "server: listen")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return eris.Wrap(err, "server: shutdown")
	}
	zap.L().Info("server: stopped")
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleFormSearch accepts the HTML form post and responds with JSON.
func (s *Server) handleFormSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}

	criteria := dealfinder.Criteria{
		Location: strings.TrimSpace(r.FormValue("location")),
		MaxPrice: parseFloat(r.FormValue("max_price")),
		MinBeds:  parseInt(r.FormValue("min_beds")),
		MinBaths: parseInt(r.FormValue("min_baths")),
	}
	s.search(w, r, criteria)
}

// handleAPISearch accepts criteria as a JSON body.
func (s *Server) handleAPISearch(w http.ResponseWriter, r *http.Request) {
	var criteria dealfinder.Criteria
	if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	s.search(w, r, criteria)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request, criteria dealfinder.Criteria) {
	if criteria.Location == "" {
		writeError(w, http.StatusBadRequest, "location is required")
		return
	}

	ctx := r.Context()

	var run *store.Run
	if s.store != nil {
		var err error
		if run, err = s.store.CreateRun(ctx, criteria); err != nil {
			zap.L().Warn("server: create run failed", zap.Error(err))
			run = nil
		}
	}

	results, err := s.finder.FindDeals(ctx, criteria)
	if err != nil {
		zap.L().Error("server: search failed",
			zap.String("location", criteria.Location), zap.Error(err))
		if run != nil {
			_ = s.store.CompleteRun(ctx, run.ID, store.StatusFailed, nil)
		}
		writeError(w, http.StatusBadGateway, "search failed")
		return
	}

	if run != nil {
		if err := s.store.CompleteRun(ctx, run.ID, store.StatusComplete, results); err != nil {
			zap.L().Warn("server: complete run failed", zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, results)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Info("server: request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("server: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func parseInt(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}
