// Package server implements the replay sidecar HTTP server. It serves
// session documents to review surfaces, applies speaker filters, and holds
// annotation snapshots in memory for the lifetime of the process.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/replaykit/replay/pkg/agenda"
	"github.com/replaykit/replay/pkg/annotation"
	"github.com/replaykit/replay/pkg/buildinfo"
	"github.com/replaykit/replay/pkg/logging"
	"github.com/replaykit/replay/pkg/transcript"
)

// Response envelope codes. Zero means success; failures use the 50000 range.
const (
	codeOK            = 0
	codeBadRequest    = 50001
	codeNotFound      = 50002
	codeInternalError = 50003
)

// Config configures the Server.
type Config struct {
	// ListenAddress is the bind address (host:port).
	ListenAddress string

	// Logger defaults to a nop logger.
	Logger logging.Logger
}

// Server is the sidecar HTTP server.
type Server struct {
	cfg      Config
	logger   logging.Logger
	router   *mux.Router
	store    *SessionStore
	registry *prometheus.Registry
	metrics  *requestMetrics
}

// New creates a Server with an empty session store. Each server carries its
// own metrics registry so multiple instances never collide.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	registry := prometheus.NewRegistry()
	s := &Server{
		cfg:      cfg,
		logger:   logger.With(logging.F("component", "server")),
		store:    NewSessionStore(),
		registry: registry,
		metrics:  newRequestMetrics(registry),
	}
	s.routes()
	return s
}

// Store returns the session store for preloading documents.
func (s *Server) Store() *SessionStore {
	return s.store
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := mux.NewRouter()
	r.Use(s.instrument)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/version", buildinfo.Handler("replay-server")).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/session/{id}/transcript", s.handleTranscript).Methods(http.MethodGet)
	api.HandleFunc("/session/{id}/lab", s.handleLabInfo).Methods(http.MethodGet)
	api.HandleFunc("/session/{id}/marks", s.handleGetMarks).Methods(http.MethodGet)
	api.HandleFunc("/session/{id}/marks", s.handleSaveMarks).Methods(http.MethodPost)
	api.HandleFunc("/marks", s.handleGetMarks).Methods(http.MethodGet)
	api.HandleFunc("/marks", s.handleSaveMarks).Methods(http.MethodPost)
	api.HandleFunc("/transcript/filter", s.handleFilter).Methods(http.MethodPost)

	s.router = r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.ListenAddress,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", logging.F("addr", s.cfg.ListenAddress))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// envelope is the response wrapper shared by all API endpoints.
type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func (s *Server) writeEnvelope(w http.ResponseWriter, code int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(envelope{Code: code, Message: message, Data: data}); err != nil {
		s.logger.Error("encoding response", logging.Err(err))
	}
}

func (s *Server) writeOK(w http.ResponseWriter, data any) {
	s.writeEnvelope(w, codeOK, "success", data)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeOK(w, map[string]string{"status": "ok"})
}

// SessionData holds the preloaded documents and annotation state for one
// session.
type SessionData struct {
	Transcript *transcript.Document
	Lab        *agenda.Document
	Marks      annotation.Snapshot
}
