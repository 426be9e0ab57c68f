// Package server serves rendered scrim documents over HTTP for browser
// previews, re-rendering when the source document changes on disk.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/scrimkit/scrim/internal/render"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Server holds the current rendered snapshot and serves it over HTTP.
type Server struct {
	addr        string
	sourcePath  string // empty means the built-in sample document
	specs       []render.ModalSpec
	defaultAnim time.Duration
	log         zerolog.Logger

	mu       sync.RWMutex
	snapshot string

	watcher *watcher
}

// New creates a server for the given source document. sourcePath may be
// empty, in which case the built-in sample document is served.
func New(addr, sourcePath string, specs []render.ModalSpec, defaultAnim time.Duration, log zerolog.Logger) (*Server, error) {
	s := &Server{
		addr:        addr,
		sourcePath:  sourcePath,
		specs:       specs,
		defaultAnim: defaultAnim,
		log:         log,
	}

	if err := s.refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

// Router builds the HTTP routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealthz)

	return r
}

// Watch starts re-rendering the snapshot whenever the source document
// changes. It is a no-op when serving the built-in sample.
func (s *Server) Watch() error {
	if s.sourcePath == "" {
		return nil
	}

	w, err := newWatcher(s.sourcePath, s.log, func() {
		if err := s.refresh(); err != nil {
			s.log.Error().Err(err).Msg("re-render after change")
			return
		}
		s.log.Info().Str("path", s.sourcePath).Msg("document re-rendered")
	})
	if err != nil {
		return err
	}

	s.watcher = w
	return nil
}

// ListenAndServe runs the HTTP server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.addr).Msg("preview server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
		if s.watcher != nil {
			s.watcher.stop()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// refresh renders the source document and swaps in the new snapshot.
func (s *Server) refresh() error {
	src := render.Sample
	if s.sourcePath != "" {
		data, err := os.ReadFile(s.sourcePath)
		if err != nil {
			return fmt.Errorf("read source document: %w", err)
		}
		src = string(data)
	}

	out, err := render.Document(strings.NewReader(src), s.specs, s.defaultAnim, s.log)
	if err != nil {
		return fmt.Errorf("render document: %w", err)
	}

	s.mu.Lock()
	s.snapshot = out
	s.mu.Unlock()
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	snapshot := s.snapshot
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(snapshot))
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// logRequests emits one structured log line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
