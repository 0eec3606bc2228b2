// Package db provides SQLite storage for bid operation timings.
package db

import "context"

// Schema defines the SQL statements to create database tables.
const Schema = `
-- Operation timings
-- One row per timed load or lookup against the bid list
CREATE TABLE IF NOT EXISTS operation_timings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,              -- UUID of the CLI invocation
    operation TEXT NOT NULL,           -- 'load' or 'find'
    bid_key TEXT NOT NULL DEFAULT '',  -- searched bid ID (find only)
    item_count INTEGER NOT NULL,       -- list size after the operation
    duration_us INTEGER NOT NULL,      -- elapsed time in microseconds
    recorded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_operation_timings_op
    ON operation_timings(operation);

CREATE INDEX IF NOT EXISTS idx_operation_timings_run
    ON operation_timings(run_id);

-- History metadata
-- Key-value facts about previous runs (e.g., last loaded CSV)
CREATE TABLE IF NOT EXISTS history_metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// InitializeSchema creates all tables if they don't exist.
func InitializeSchema(ctx context.Context, conn *Connection) error {
	if _, err := conn.ExecContext(ctx, Schema); err != nil {
		return err
	}
	return nil
}
