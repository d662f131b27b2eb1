// Package server exposes the dashboard JSON API over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/j-veylop/grok-error-dashboard/internal/db"
	"github.com/j-veylop/grok-error-dashboard/internal/logger"
	"github.com/j-veylop/grok-error-dashboard/internal/models"
	"github.com/j-veylop/grok-error-dashboard/internal/services/telemetry"
)

const defaultSnapshotLimit = 100

// Server serves the dashboard API. Requests are handled synchronously;
// each one triggers its own upstream queries.
type Server struct {
	telemetry *telemetry.Service
	history   *db.DB
	http      *http.Server
}

// New creates a server bound to addr. history may be nil, which
// disables snapshot recording and the /api/snapshots endpoint data.
func New(addr string, svc *telemetry.Service, history *db.DB) *Server {
	s := &Server{
		telemetry: svc,
		history:   history,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/errors", s.handleErrors)
	mux.HandleFunc("/api/session/", s.handleSession)
	mux.HandleFunc("/api/snapshots", s.handleSnapshots)
	mux.HandleFunc("/api/health", s.handleHealth)

	s.http = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.http.Shutdown(shutdownCtx)
	}()

	logger.Info("dashboard API listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Handler returns the underlying handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// handleErrors serves the aggregate error feed for a time range.
func (s *Server) handleErrors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	timeRange := models.ParseRange(r.URL.Query().Get("range"))
	snapshot := s.telemetry.Refresh(r.Context(), timeRange)

	if s.history != nil {
		if err := s.history.RecordSnapshot(r.Context(), timeRange, snapshot.Stats, snapshot.Degraded); err != nil {
			logger.Warn("failed to record stats snapshot", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, snapshot)
}

// handleSession serves one full session document by id.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/session/")
	if id == "" || strings.Contains(id, "/") {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}

	doc, err := s.telemetry.Session(r.Context(), id)
	switch {
	case errors.Is(err, telemetry.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
	case err != nil:
		logger.Error("session lookup failed", "id", id, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "upstream unavailable"})
	default:
		writeJSON(w, http.StatusOK, doc)
	}
}

// handleSnapshots serves the locally recorded stats history.
func (s *Server) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if s.history == nil {
		writeJSON(w, http.StatusOK, []snapshotEntry{})
		return
	}

	timeRange := models.ParseRange(r.URL.Query().Get("range"))
	limit := defaultSnapshotLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	records, err := s.history.RecentSnapshots(r.Context(), timeRange, limit)
	if err != nil {
		logger.Error("failed to read snapshot history", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "snapshot history unavailable"})
		return
	}

	entries := make([]snapshotEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, snapshotEntry{
			TakenAt:   rec.TakenAt.UTC().Format(time.RFC3339),
			TimeRange: rec.TimeRange,
			Stats:     rec.Stats,
			Degraded:  rec.Degraded,
		})
	}
	writeJSON(w, http.StatusOK, entries)
}

// snapshotEntry is the wire shape of one recorded snapshot.
type snapshotEntry struct {
	TakenAt   string       `json:"takenAt"`
	TimeRange string       `json:"timeRange"`
	Stats     models.Stats `json:"stats"`
	Degraded  bool         `json:"degraded"`
}

// handleHealth is a liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"cachedSessions": s.telemetry.CachedSessions(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}
