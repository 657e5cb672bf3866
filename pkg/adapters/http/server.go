package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/pollster/internal/dto"
	"github.com/aretw0/pollster/internal/logging"
	"github.com/aretw0/pollster/pkg/domain"
	"github.com/aretw0/pollster/pkg/ports"
	"github.com/aretw0/pollster/pkg/runner"
	"github.com/aretw0/pollster/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Default append retries of the gateway runner. A completed session ignores a
// repeated contact, so clients cannot re-send a record themselves.
const (
	DefaultSinkRetries    = 2
	DefaultSinkRetryDelay = 200 * time.Millisecond
)

// Controller is the subset of survey.Controller the gateway needs.
type Controller interface {
	runner.Handler
	Sessions() *session.Manager
}

// Server exposes the survey over JSON. Clients post inbound messages and receive
// the outbound effects in the response; the same messages are pushed to SSE subscribers.
type Server struct {
	Controller Controller
	Streams    *StreamManager
	Runner     *runner.Runner
	Version    string

	logger     *slog.Logger
	metrics    http.Handler
	runnerOpts []runner.Option
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler mounts h on /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithRunnerOptions forwards options to the runner performing effects.
func WithRunnerOptions(opts ...runner.Option) Option {
	return func(s *Server) {
		s.runnerOpts = append(s.runnerOpts, opts...)
	}
}

// WithVersion sets the version reported by /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.Version = v
	}
}

// NewServer wires a gateway around controller. Records are appended to sink.
func NewServer(controller Controller, sink ports.RecordSink, opts ...Option) *Server {
	s := &Server{
		Controller: controller,
		Version:    "dev",
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)
	base := []runner.Option{
		runner.WithLogger(s.logger),
		runner.WithSinkRetries(DefaultSinkRetries, DefaultSinkRetryDelay),
	}
	s.Runner = runner.NewRunner(controller, s.Streams, sink, append(base, s.runnerOpts...)...)
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/inbound", s.PostInbound)
		r.Get("/sessions", s.ListSessions)
		r.Get("/sessions/{userID}", s.GetSession)
		r.Get("/events/{userID}", s.SubscribeEvents)
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
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

// PostInbound handles POST /v1/inbound.
// A record append that still fails after the runner's retries answers 502 Bad Gateway;
// the record is then lost, since the completed session ignores a repeated contact.
func (s *Server) PostInbound(w http.ResponseWriter, r *http.Request) {
	var body dto.InboundRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("PostInbound: Invalid request body", "err", err)
		return
	}
	if body.UserID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	msg := s.Runner.Sanitize(body.ToDomain())
	effects, err := s.Controller.HandleInbound(r.Context(), msg)
	if err != nil {
		http.Error(w, fmt.Sprintf("Inbound error: %v", err), http.StatusInternalServerError)
		s.logger.Error("PostInbound failed", "user_id", body.UserID, "err", err)
		return
	}

	if err := s.Runner.Apply(r.Context(), effects); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrSinkWrite) {
			status = http.StatusBadGateway
		}
		http.Error(w, fmt.Sprintf("Effect error: %v", err), status)
		return
	}

	writeJSON(w, s.logger, http.StatusOK, dto.InboundResponse{Effects: dto.FromEffects(effects)})
}

// GetSession handles GET /v1/sessions/{userID}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	sess, err := s.Controller.Sessions().Load(r.Context(), userID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		s.logger.Error("GetSession failed", "user_id", userID, "err", err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, dto.FromSession(sess))
}

// ListSessions handles GET /v1/sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Controller.Sessions().List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		s.logger.Error("ListSessions failed", "err", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, s.logger, http.StatusOK, map[string][]string{"sessions": ids})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, map[string]string{
		"app":     "pollster-http",
		"version": s.Version,
	})
}

// SubscribeEvents handles GET /v1/events/{userID} (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}
	userID := chi.URLParam(r, "userID")

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(userID)
	defer cancel()
	s.logger.Info("SSE: Subscribed", "user_id", userID)

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE: Client disconnected", "user_id", userID)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Response encode failed", "err", err)
	}
}
