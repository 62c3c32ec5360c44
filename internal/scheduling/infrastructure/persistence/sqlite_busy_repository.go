package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	schedulingdomain "github.com/chronosuggest/engine/internal/scheduling/domain"
)

// SQLiteBusyRepository implements schedulingdomain.BusyIntervalSource over a
// flat busy_intervals table: one row per committed span, keyed by user.
// This is C6's reference adapter — any store that can answer "what is this
// user already committed to" can implement the same interface.
type SQLiteBusyRepository struct {
	db *sql.DB
}

// NewSQLiteBusyRepository wraps an already-open, already-migrated *sql.DB.
func NewSQLiteBusyRepository(db *sql.DB) *SQLiteBusyRepository {
	return &SQLiteBusyRepository{db: db}
}

// BusyIntervals returns every committed interval for userID, ordered by
// start time.
func (r *SQLiteBusyRepository) BusyIntervals(ctx context.Context, userID string) ([]schedulingdomain.BusyInterval, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, start_time, end_time FROM busy_intervals WHERE user_id = ? ORDER BY start_time ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("persistence: query busy intervals: %w", err)
	}
	defer rows.Close()

	var intervals []schedulingdomain.BusyInterval
	for rows.Next() {
		var uid, startRaw, endRaw string
		if err := rows.Scan(&uid, &startRaw, &endRaw); err != nil {
			return nil, fmt.Errorf("persistence: scan busy interval: %w", err)
		}
		start, err := time.Parse(time.RFC3339, startRaw)
		if err != nil {
			return nil, fmt.Errorf("persistence: parse start_time: %w", err)
		}
		end, err := time.Parse(time.RFC3339, endRaw)
		if err != nil {
			return nil, fmt.Errorf("persistence: parse end_time: %w", err)
		}
		intervals = append(intervals, schedulingdomain.BusyInterval{UserID: uid, Start: start, End: end})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("persistence: iterate busy intervals: %w", err)
	}
	return intervals, nil
}

// Commit inserts a new busy interval, e.g. immediately after C9 creates a
// task directly, so the next call to BusyIntervals reflects it.
func (r *SQLiteBusyRepository) Commit(ctx context.Context, userID string, start, end time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO busy_intervals (id, user_id, start_time, end_time, created_at) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), userID, start.Format(time.RFC3339), end.Format(time.RFC3339), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("persistence: insert busy interval: %w", err)
	}
	return nil
}

// Release removes userID's busy intervals whose start and end are exactly
// start and end (intervals that merely overlap that span are kept) —
// used when a task is rescheduled or deleted and its old commitment must
// stop blocking future slot suggestions.
func (r *SQLiteBusyRepository) Release(ctx context.Context, userID string, start, end time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM busy_intervals WHERE user_id = ? AND start_time = ? AND end_time = ?`,
		userID, start.Format(time.RFC3339), end.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("persistence: release busy interval: %w", err)
	}
	return nil
}
