// Package http exposes the Extension over a local HTTP bridge, so a browser
// runtime that cannot spawn processes can still reach the native host.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/opennormal"
	"github.com/aretw0/opennormal/pkg/trigger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MaxBodyBytes caps request bodies. It matches the largest message a
// native host accepts from the browser.
const MaxBodyBytes = 64 << 20

// Extension defines what the bridge needs from the core.
type Extension interface {
	Handle(ctx context.Context, ev trigger.Event) (opennormal.Result, bool)
	Open(ctx context.Context, candidate any) opennormal.Result
	Menus() []trigger.MenuItem
}

var _ Extension = (*opennormal.Extension)(nil)

// Server serves the bridge endpoints.
type Server struct {
	Extension Extension
	logger    *slog.Logger
	gatherer  prometheus.Gatherer
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the logger for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics mounts /metrics for the given gatherer.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// OpenRequest is the body of POST /v1/open. URL is untyped so that a missing
// or non-string value reaches the admission gate as is.
type OpenRequest struct {
	URL any `json:"url"`
}

// NewHandler creates the HTTP handler for ext.
func NewHandler(ext Extension, opts ...Option) http.Handler {
	s := &Server{Extension: ext}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/menus", s.Menus)
		r.Post("/events", s.Events)
		r.Post("/open", s.Open)
	})
	return r
}

// Menus handles GET /v1/menus.
func (s *Server) Menus(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Extension.Menus())
}

// Events handles POST /v1/events. Events that do not belong to the
// extension are answered with 204 and have no effect.
func (s *Server) Events(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if !s.decode(w, r, &raw) {
		return
	}

	ev, err := trigger.Decode(raw)
	if err != nil {
		http.Error(w, "Invalid trigger event", http.StatusBadRequest)
		s.logger.Warn("Events: Invalid trigger event", "err", err)
		return
	}

	res, ok := s.Extension.Handle(r.Context(), ev)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// Open handles POST /v1/open.
func (s *Server) Open(w http.ResponseWriter, r *http.Request) {
	var body OpenRequest
	if !s.decode(w, r, &body) {
		return
	}
	s.writeJSON(w, http.StatusOK, s.Extension.Open(r.Context(), body.URL))
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
		} else {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
		}
		s.logger.Warn("Invalid request body", "path", r.URL.Path, "err", err)
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "err", err)
	}
}
