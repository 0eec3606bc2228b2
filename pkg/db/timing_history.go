package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// TimingHistory stores operation timings in SQLite.
type TimingHistory struct {
	conn *Connection
}

// NewTimingHistory creates a new TimingHistory instance.
func NewTimingHistory(conn *Connection) *TimingHistory {
	return &TimingHistory{conn: conn}
}

// RecordTiming records a timed operation.
func (h *TimingHistory) RecordTiming(ctx context.Context, timing Timing) error {
	query := `
		INSERT INTO operation_timings (run_id, operation, bid_key, item_count, duration_us)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := h.conn.ExecContext(ctx, query,
		timing.RunID,
		string(timing.Operation),
		timing.BidKey,
		timing.ItemCount,
		timing.Duration.Microseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to record timing: %w", err)
	}

	return nil
}

// Close closes the underlying connection.
func (h *TimingHistory) Close() error {
	return h.conn.Close()
}

// Recent returns up to limit timings, newest first.
func (h *TimingHistory) Recent(ctx context.Context, limit int) ([]Timing, error) {
	query := `
		SELECT id, run_id, operation, bid_key, item_count, duration_us, recorded_at
		FROM operation_timings
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := h.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent timings: %w", err)
	}
	defer rows.Close()

	var timings []Timing
	for rows.Next() {
		var timing Timing
		var operation string
		var durationUS int64

		if err := rows.Scan(
			&timing.ID,
			&timing.RunID,
			&operation,
			&timing.BidKey,
			&timing.ItemCount,
			&durationUS,
			&timing.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan timing: %w", err)
		}

		timing.Operation = Operation(operation)
		timing.Duration = time.Duration(durationUS) * time.Microsecond
		timings = append(timings, timing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate timings: %w", err)
	}

	return timings, nil
}

// OperationStats aggregates timings for one operation.
type OperationStats struct {
	Operation Operation
	Count     int
	Average   time.Duration
	Max       time.Duration
}

// Stats represents timing statistics.
type Stats struct {
	Operations   []OperationStats
	TotalRuns    int
	LastRecorded sql.NullString
}

// GetStats retrieves timing statistics grouped by operation.
func (h *TimingHistory) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats

	rows, err := h.conn.QueryContext(ctx, `
		SELECT operation, COUNT(*), AVG(duration_us), MAX(duration_us)
		FROM operation_timings
		GROUP BY operation
		ORDER BY operation
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get operation stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var op OperationStats
		var operation string
		var avgUS float64
		var maxUS int64

		if err := rows.Scan(&operation, &op.Count, &avgUS, &maxUS); err != nil {
			return nil, fmt.Errorf("failed to scan operation stats: %w", err)
		}

		op.Operation = Operation(operation)
		op.Average = time.Duration(avgUS * float64(time.Microsecond))
		op.Max = time.Duration(maxUS) * time.Microsecond
		stats.Operations = append(stats.Operations, op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate operation stats: %w", err)
	}

	err = h.conn.QueryRowContext(ctx, `SELECT COUNT(DISTINCT run_id) FROM operation_timings`).Scan(&stats.TotalRuns)
	if err != nil {
		return nil, fmt.Errorf("failed to get run count: %w", err)
	}

	err = h.conn.QueryRowContext(ctx, `SELECT MAX(recorded_at) FROM operation_timings`).Scan(&stats.LastRecorded)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get last recorded time: %w", err)
	}

	return &stats, nil
}

// GetMetadata retrieves a metadata value. A missing key yields "".
func (h *TimingHistory) GetMetadata(ctx context.Context, key string) (string, error) {
	query := `SELECT value FROM history_metadata WHERE key = ?`

	var value string
	err := h.conn.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get metadata: %w", err)
	}

	return value, nil
}

// SetMetadata sets a metadata value.
func (h *TimingHistory) SetMetadata(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO history_metadata (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := h.conn.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set metadata: %w", err)
	}

	return nil
}
