// Package trackdb persists corner-analysis runs and their detected corners in
// SQLite. Each analysis pass over a track becomes one analysis_runs row plus
// zero or more corners rows, so tuning changes can be compared across runs of
// the same source.
package trackdb

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps the underlying SQLite handle.
type DB struct {
	*sql.DB
}

// Open opens (creating if necessary) the SQLite database at path. Callers are
// expected to run MigrateUp before using the stores.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite handles a single writer; serialising access through one
	// connection avoids most SQLITE_BUSY churn under concurrent API calls.
	db.SetMaxOpenConns(1)
	return &DB{db}, nil
}
