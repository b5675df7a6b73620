package server

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// openDatabase opens the invocation log database. An empty path selects a
// shared in-memory database so the log works without any on-disk state.
func openDatabase(path string) (*sql.DB, error) {
	var db *sql.DB
	var err error

	if path != "" {
		db, err = sql.Open("sqlite", "file:"+path)
	} else {
		db, err = sql.Open("sqlite", "file:memdb?mode=memory&cache=shared")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	if err := initDB(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init database: %v", err)
	}

	return db, nil
}

func initDB(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS invocations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		name TEXT NOT NULL,
		ok INTEGER NOT NULL DEFAULT 1,
		error TEXT DEFAULT '',
		duration_ms INTEGER NOT NULL DEFAULT 0,
		timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_invocations_name ON invocations(name);
	`
	_, err := db.Exec(schema)
	return err
}

// InvocationRecord is one row of the invocation log.
type InvocationRecord struct {
	ID         int64     `json:"id"`
	Kind       string    `json:"kind"`
	Name       string    `json:"name"`
	OK         bool      `json:"ok"`
	Error      string    `json:"error,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
}

// RecordInvocation appends one row to the invocation log.
func RecordInvocation(db *sql.DB, kind, name string, ok bool, errText string, duration time.Duration) error {
	okVal := 0
	if ok {
		okVal = 1
	}

	_, err := db.Exec(
		`INSERT INTO invocations (kind, name, ok, error, duration_ms) VALUES (?, ?, ?, ?, ?)`,
		kind, name, okVal, errText, duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to record invocation: %w", err)
	}
	return nil
}

// RecentInvocations returns the newest rows of the invocation log, newest
// first.
func RecentInvocations(db *sql.DB, limit int) ([]InvocationRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.Query(
		`SELECT id, kind, name, ok, error, duration_ms, timestamp
		 FROM invocations ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query invocations: %w", err)
	}
	defer rows.Close()

	var records []InvocationRecord
	for rows.Next() {
		var rec InvocationRecord
		var okVal int
		if err := rows.Scan(&rec.ID, &rec.Kind, &rec.Name, &okVal, &rec.Error, &rec.DurationMS, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan invocation: %w", err)
		}
		rec.OK = okVal == 1
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invocations: %w", err)
	}

	return records, nil
}
