package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

const tableSequence = "global_sequence"

// sequenceCounter hands out the ordering key shared by quiz results and
// LLM events. The value lives in a single-row table so it survives
// restarts and is shared by every process using the same database.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

func newSequenceCounter(db *sql.DB, driver Driver) (*sequenceCounter, error) {
	col := "INTEGER"
	if driver == DriverPostgres {
		col = "BIGINT"
	}
	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			next_val %s NOT NULL DEFAULT 1
		)`, tableSequence, col),
		fmt.Sprintf(`INSERT INTO %s (id, next_val) VALUES (1, 1) ON CONFLICT (id) DO NOTHING`, tableSequence),
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("init %s: %w", tableSequence, err)
		}
	}
	return &sequenceCounter{db: db}, nil
}

// Next reserves and returns one sequence value. Values are strictly
// increasing but may have gaps when an insert using them fails.
func (c *sequenceCounter) Next(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int64
	row := c.db.QueryRowContext(ctx, fmt.Sprintf(
		`UPDATE %s SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`, tableSequence))
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
