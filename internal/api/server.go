package api

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"streamd/internal/catalog"
	"streamd/internal/config"
	"streamd/internal/reconciler"
	"streamd/internal/supervisor"
	"streamd/pkg/logging"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

//go:embed panel.html
var panelHTML []byte

// Server is the HTTP control API. It reads from the catalog and supervisor
// and mutates them on behalf of operators.
type Server struct {
	cfg       *config.Config
	catalog   *catalog.Catalog
	sup       *supervisor.Supervisor
	metrics   *reconciler.Metrics
	startedAt time.Time
}

// NewServer creates the control API over the given catalog and supervisor.
// The reconciler metrics feed the status endpoint.
func NewServer(cfg *config.Config, cat *catalog.Catalog, sup *supervisor.Supervisor, metrics *reconciler.Metrics) *Server {
	return &Server{
		cfg:       cfg,
		catalog:   cat,
		sup:       sup,
		metrics:   metrics,
		startedAt: time.Now(),
	}
}

// Handler returns the fully wired HTTP handler, routes plus middleware. It
// is exported so tests can drive the API without a listener.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", s.handlePanel).Methods(http.MethodGet)
	r.HandleFunc("/index.html", s.handlePanel).Methods(http.MethodGet)
	r.HandleFunc("/api/streams", s.handleList).Methods(http.MethodGet)
	r.HandleFunc("/api/status", s.handleStatus).Methods(http.MethodGet)

	// The bulk routes must be registered before the per-stream ones, or
	// "stop-all" would be taken for a stream id.
	r.HandleFunc("/api/streams/stop-all", s.handleStopAll).Methods(http.MethodPost)
	r.HandleFunc("/api/streams/start-all", s.handleStartAll).Methods(http.MethodPost)
	r.HandleFunc("/api/streams/{id}/start", s.handleStart).Methods(http.MethodPost)
	r.HandleFunc("/api/streams/{id}/stop", s.handleStop).Methods(http.MethodPost)
	r.HandleFunc("/api/streams/{id}/{action}", s.handleUnknownAction).Methods(http.MethodPost)
	r.HandleFunc("/api/streams/{id}", s.handleUnknownAction).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(handleNotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(handleMethodNotAllowed)

	// The NotFoundHandler bypasses mux middleware, so the middleware wraps
	// the router instead of being registered on it. Preflight requests are
	// answered there too; they apply to every path alike.
	return withRequestID(withAccessLog(withPreflight(r)))
}

// Run serves the control API until ctx is canceled, then drains in-flight
// requests within a bounded grace period.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("API", "Control API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("control API server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Warn("API", "Graceful shutdown failed, closing: %v", err)
		_ = srv.Close()
	}
	logging.Info("API", "Control API stopped")
	return ctx.Err()
}

// writeJSON writes v with the permissive CORS header the panel relies on.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("API", err, "Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
