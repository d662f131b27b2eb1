package db

import (
	"context"
	"time"

	"github.com/j-veylop/grok-error-dashboard/internal/models"
)

// SnapshotRecord is one recorded refresh of the headline counters.
// Keeping a local trail of what the dashboard observed lets trends
// survive upstream retention limits or outages.
type SnapshotRecord struct {
	ID        int64
	TakenAt   time.Time
	TimeRange string
	Stats     models.Stats
	Degraded  bool
}

// RecordSnapshot stores the counters from one refresh.
func (db *DB) RecordSnapshot(ctx context.Context, timeRange models.TimeRange, stats models.Stats, degraded bool) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO stat_snapshots (time_range, bugs, failures, errors, cli, unique_sessions, degraded)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		timeRange.String(), stats.Bugs, stats.Failures, stats.Errors, stats.CLI,
		stats.UniqueSessions, boolToInt(degraded),
	)
	return err
}

// RecentSnapshots returns up to limit snapshots for the given range,
// newest first.
func (db *DB) RecentSnapshots(ctx context.Context, timeRange models.TimeRange, limit int) ([]SnapshotRecord, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, taken_at, time_range, bugs, failures, errors, cli, unique_sessions, degraded
		FROM stat_snapshots
		WHERE time_range = ?
		ORDER BY taken_at DESC, id DESC
		LIMIT ?`,
		timeRange.String(), limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []SnapshotRecord
	for rows.Next() {
		var rec SnapshotRecord
		var degraded int
		if err := rows.Scan(&rec.ID, &rec.TakenAt, &rec.TimeRange, &rec.Stats.Bugs,
			&rec.Stats.Failures, &rec.Stats.Errors, &rec.Stats.CLI,
			&rec.Stats.UniqueSessions, &degraded); err != nil {
			return nil, err
		}
		rec.Degraded = degraded != 0
		records = append(records, rec)
	}
	return records, rows.Err()
}

// PruneSnapshots removes snapshots older than the cutoff. Returns the
// number of deleted rows.
func (db *DB) PruneSnapshots(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := db.ExecContext(ctx,
		`DELETE FROM stat_snapshots WHERE taken_at < ?`,
		olderThan.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
