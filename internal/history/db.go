package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// OpenDB opens the history database at the given path.
// If path is ":memory:", uses an in-memory database.
// Sets WAL mode and runs migrations automatically.
func OpenDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running history migrations: %w", err)
	}

	return db, nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS query_history (
		id           TEXT PRIMARY KEY,
		raw_text     TEXT NOT NULL,
		created_at   TEXT NOT NULL,
		success      INTEGER NOT NULL,
		failed_stage TEXT,
		error_detail TEXT,
		intent_json  TEXT,
		plan_json    TEXT,
		summary_json TEXT,
		chart_json   TEXT,
		no_viz       INTEGER NOT NULL DEFAULT 0,
		timings_json TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_query_history_created ON query_history(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_query_history_success ON query_history(success)`,
}

func migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
