package telemetry

import (
	"math"
	"sort"
	"time"

	"github.com/j-veylop/grok-error-dashboard/internal/models"
)

// bucket accumulates one time period while aggregating.
type bucket struct {
	counts    map[models.EventType]int
	sessions  map[string]struct{}
	tokensIn  int
	tokensOut int
	sizeBytes int
}

func newBucket() *bucket {
	return &bucket{
		counts:   make(map[models.EventType]int),
		sessions: make(map[string]struct{}),
	}
}

// timestampLayouts are tried in order when parsing record timestamps.
// Documents normally carry RFC 3339 with a Z suffix, but older writers
// omitted the zone or the fractional seconds.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
}

// parseTimestamp parses a record timestamp. ok is false for empty or
// malformed values; callers skip those records rather than failing the
// aggregation.
func parseTimestamp(ts string) (time.Time, bool) {
	if ts == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, ts); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// BuildTimeSeries groups error events (and, when present, session
// stats) into per-period summaries for charting. Events with missing
// or unparsable timestamps are silently skipped. The result is ordered
// by period label ascending, which is chronological for the
// fixed-width layouts each range uses.
func BuildTimeSeries(events []models.ErrorEvent, timeRange models.TimeRange, sessionStats []models.SessionStat) []models.BucketSummary {
	layout := timeRange.BucketLayout()
	buckets := make(map[string]*bucket)

	get := func(key string) *bucket {
		b, ok := buckets[key]
		if !ok {
			b = newBucket()
			buckets[key] = b
		}
		return b
	}

	for _, e := range events {
		parsed, ok := parseTimestamp(e.Timestamp)
		if !ok {
			continue
		}
		b := get(parsed.Format(layout))
		b.counts[e.Type]++
		b.sessions[e.SessionID] = struct{}{}
	}

	for _, s := range sessionStats {
		parsed, ok := parseTimestamp(s.UpdatedAt)
		if !ok {
			continue
		}
		b := get(parsed.Format(layout))
		b.tokensIn += s.TokensIn
		b.tokensOut += s.TokensOut
		b.sizeBytes += s.EstimatedBytes()
		b.sessions[s.ID] = struct{}{}
	}

	periods := make([]string, 0, len(buckets))
	for period := range buckets {
		periods = append(periods, period)
	}
	sort.Strings(periods)

	result := make([]models.BucketSummary, 0, len(periods))
	for _, period := range periods {
		b := buckets[period]
		sessionCount := len(b.sessions)
		if sessionCount == 0 {
			sessionCount = 1
		}
		// CLI failures are charted separately and excluded from the
		// per-session error average.
		totalErrors := b.counts[models.EventBug] + b.counts[models.EventFailure] + b.counts[models.EventError]

		result = append(result, models.BucketSummary{
			Period:           period,
			Bugs:             b.counts[models.EventBug],
			Failures:         b.counts[models.EventFailure],
			Errors:           b.counts[models.EventError],
			CLI:              b.counts[models.EventCLI],
			AvgPerSession:    round2(float64(totalErrors) / float64(sessionCount)),
			TokensIn:         b.tokensIn,
			TokensOut:        b.tokensOut,
			AvgSessionSizeKB: round1(float64(b.sizeBytes) / float64(sessionCount) / 1024),
		})
	}

	return result
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
