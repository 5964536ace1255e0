package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"streamd/internal/catalog"
	"streamd/internal/supervisor"
	"streamd/pkg/logging"
)

func (s *Server) handlePanel(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(panelHTML)
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	running := make(map[string]supervisor.Record)
	for _, rec := range s.sup.Snapshot() {
		running[rec.ID] = rec
	}

	entries := s.catalog.All()
	streams := make([]StreamStatus, 0, len(entries))
	for _, entry := range entries {
		status := StreamStatus{
			ID:          entry.ID,
			SourcePath:  entry.SourcePath,
			RepeatCount: entry.RepeatCount,
			DeliveryURL: s.cfg.DeliveryURL(entry.ID),
		}
		if rec, ok := running[entry.ID]; ok {
			status.Running = true
			status.PID = rec.PID
			status.StartedAt = rec.StartedAt
		}
		streams = append(streams, status)
	}

	writeJSON(w, http.StatusOK, streams)
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, DaemonStatus{
		Hostname:   s.cfg.Hostname,
		MediaDir:   s.cfg.MediaDir,
		Cataloged:  s.catalog.Len(),
		Running:    s.sup.Len(),
		StartedAt:  s.startedAt,
		Reconciler: s.metrics.Summary(),
	})
}

// handleStart (re)starts one stream. A running stream is stopped first, so
// the request always takes effect with the given repeat count. The count is
// recorded on the catalog entry before the launch; even if the launch fails
// it is the count the next start will use.
func (s *Server) handleStart(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	entry, ok := s.catalog.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "stream not found")
		return
	}

	repeatCount := catalog.InfiniteRepeat
	if raw := req.URL.Query().Get("repeat"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid repeat count")
			return
		}
		repeatCount = n
	}
	s.catalog.SetRepeatCount(id, repeatCount)

	if err := s.sup.Restart(id, entry.SourcePath, repeatCount); err != nil {
		logging.Error("API", err, "Failed to start stream %s", id)
		writeJSON(w, http.StatusOK, ActionResponse{Success: false})
		return
	}

	logging.Info("API", "Now playing %s", s.cfg.DeliveryURL(id))
	writeJSON(w, http.StatusOK, ActionResponse{Success: true})
}

func (s *Server) handleStop(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	if err := s.sup.Stop(id); err != nil {
		if !errors.Is(err, supervisor.ErrNotRunning) {
			logging.Error("API", err, "Failed to stop stream %s", id)
		}
		writeJSON(w, http.StatusOK, ActionResponse{Success: false})
		return
	}
	writeJSON(w, http.StatusOK, ActionResponse{Success: true})
}

// handleStartAll starts every cataloged stream that is not already running,
// each with its remembered repeat count. Individual launch failures are
// logged and skipped; the bulk action itself always succeeds.
func (s *Server) handleStartAll(w http.ResponseWriter, _ *http.Request) {
	for _, entry := range s.catalog.All() {
		if s.sup.IsRunning(entry.ID) {
			continue
		}
		err := s.sup.Start(entry.ID, entry.SourcePath, entry.RepeatCount)
		if err != nil {
			if !errors.Is(err, supervisor.ErrAlreadyRunning) {
				logging.Error("API", err, "Failed to start stream %s", entry.ID)
			}
			continue
		}
		logging.Info("API", "Now playing %s", s.cfg.DeliveryURL(entry.ID))
	}
	writeJSON(w, http.StatusOK, ActionResponse{Success: true})
}

func (s *Server) handleStopAll(w http.ResponseWriter, _ *http.Request) {
	stopped := s.sup.StopAll()
	logging.Info("API", "Stopped %d streams", stopped)
	writeJSON(w, http.StatusOK, ActionResponse{Success: true})
}

func (s *Server) handleUnknownAction(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusBadRequest, "unknown action")
}

func handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "not found")
}

func handleMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
