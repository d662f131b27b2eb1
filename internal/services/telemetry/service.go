// Package telemetry turns raw session documents from the upstream
// store into the flattened error feed, stats, time series, and session
// classification the dashboard serves.
package telemetry

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/j-veylop/grok-error-dashboard/internal/cache"
	"github.com/j-veylop/grok-error-dashboard/internal/logger"
	"github.com/j-veylop/grok-error-dashboard/internal/models"
	"github.com/j-veylop/grok-error-dashboard/internal/store"
)

// ErrNotFound is returned by Session for unknown session ids.
var ErrNotFound = errors.New("session not found")

// Querier executes one N1QL statement. Satisfied by *store.Client.
type Querier interface {
	Query(ctx context.Context, statement string, params map[string]any) ([]store.Row, error)
}

// Service fetches and aggregates error telemetry. All calls are
// request-scoped and synchronous: one upstream attempt per query, no
// retries. An upstream failure degrades that query to zero rows.
type Service struct {
	querier  Querier
	bucket   string
	sessions *cache.Cache[store.Row]
	now      func() time.Time
}

// New creates a telemetry service reading from the given bucket.
// sessionTTL controls the session document cache; zero means entries
// are never invalidated.
func New(querier Querier, bucket string, sessionTTL time.Duration) *Service {
	return &Service{
		querier:  querier,
		bucket:   bucket,
		sessions: cache.New[store.Row](sessionTTL),
		now:      time.Now,
	}
}

// fetch runs one query, degrading any failure to an empty row set.
// The degraded return distinguishes "no rows" from "query failed".
func (s *Service) fetch(ctx context.Context, label, statement string, start string) (rows []store.Row, degraded bool) {
	rows, err := s.querier.Query(ctx, statement, map[string]any{"start": start})
	if err != nil {
		logger.Warn("upstream query failed, using empty result set", "query", label, "error", err)
		return nil, true
	}
	return rows, false
}

// Refresh executes all upstream queries for the range and assembles a
// snapshot. It never returns an error: failed queries contribute zero
// rows and set Degraded on the snapshot.
func (s *Service) Refresh(ctx context.Context, timeRange models.TimeRange) *models.Snapshot {
	start := timeRange.Start(s.now().UTC()).Format("2006-01-02T15:04:05") + "Z"

	bugs, degradedBugs := s.fetch(ctx, "bugs", bugsQuery(s.bucket), start)
	failures, degradedFailures := s.fetch(ctx, "failures", failuresQuery(s.bucket), start)
	pairErrors, degradedPairs := s.fetch(ctx, "pairErrors", pairErrorsQuery(s.bucket), start)
	cliFailures, degradedCLI := s.fetch(ctx, "cliFailures", cliFailuresQuery(s.bucket), start)
	statRows, degradedStats := s.fetch(ctx, "sessionStats", sessionStatsQuery(s.bucket), start)

	events := make([]models.ErrorEvent, 0, len(bugs)+len(failures)+len(pairErrors)+len(cliFailures))
	for _, row := range bugs {
		events = append(events, bugEvent(row))
	}
	for _, row := range failures {
		events = append(events, failureEvent(row))
	}
	for _, row := range pairErrors {
		events = append(events, pairErrorEvent(row))
	}
	for _, row := range cliFailures {
		events = append(events, cliEvent(row))
	}

	// Newest first for the table; the raw ISO-8601 strings compare
	// correctly as text.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp > events[j].Timestamp
	})

	sessionIDs := make(map[string]struct{})
	for _, e := range events {
		sessionIDs[e.SessionID] = struct{}{}
	}

	sessionStats := make([]models.SessionStat, 0, len(statRows))
	for _, row := range statRows {
		sessionStats = append(sessionStats, sessionStat(row))
	}

	typeCounts, typeMap := ClassifySessions(sessionStats)

	return &models.Snapshot{
		Stats: models.Stats{
			Bugs:           len(bugs),
			Failures:       len(failures),
			Errors:         len(pairErrors),
			CLI:            len(cliFailures),
			UniqueSessions: len(sessionIDs),
		},
		Errors:         events,
		TimeSeries:     BuildTimeSeries(events, timeRange, sessionStats),
		SessionTypes:   typeCounts,
		SessionTypeMap: typeMap,
		Degraded:       degradedBugs || degradedFailures || degradedPairs || degradedCLI || degradedStats,
	}
}

// Session returns the full session document for id, consulting the
// cache first. Unknown ids return ErrNotFound; upstream failures
// propagate so the handler can distinguish them from absence.
func (s *Service) Session(ctx context.Context, id string) (store.Row, error) {
	if doc, ok := s.sessions.Get(id); ok {
		return doc, nil
	}

	rows, err := s.querier.Query(ctx, sessionByIDQuery(s.bucket), map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	s.sessions.Set(id, rows[0])
	return rows[0], nil
}

// CachedSessions reports the number of session documents held in the
// cache.
func (s *Service) CachedSessions() int {
	return s.sessions.Len()
}
