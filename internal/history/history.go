// Package history persists run summaries to a local SQLite database
// (~/.local/share/taskcrew/taskcrew.db).
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/bstark/taskcrew/pkg/models"
)

// Store wraps the SQLite connection holding run history.
type Store struct {
	conn *sql.DB
	path string
}

// DefaultPath returns the path to the user-level history database.
func DefaultPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, _ := os.UserHomeDir()
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "taskcrew", "taskcrew.db")
}

// Open opens the history database at path, creating parent directories and
// applying migrations. WAL mode is enabled for concurrent reads.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	s := &Store{conn: conn, path: path}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Path returns the path to the database file.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) migrate() error {
	_, err := s.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_version table: %w", err)
	}

	var current int
	row := s.conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version")
	if err := row.Scan(&current); err != nil {
		return fmt.Errorf("get schema version: %w", err)
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migrationV1Runs},
		{2, migrationV2TaskRecords},
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		tx, err := s.conn.Begin()
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		if _, err := tx.Exec(m.sql); err != nil {
			tx.Rollback()
			return fmt.Errorf("apply migration v%d: %w", m.version, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", m.version); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration v%d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration v%d: %w", m.version, err)
		}
	}

	return nil
}

const migrationV1Runs = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	project_idea TEXT NOT NULL,
	task_count INTEGER NOT NULL DEFAULT 0,
	succeeded INTEGER NOT NULL DEFAULT 0,
	failed INTEGER NOT NULL DEFAULT 0,
	started_at DATETIME NOT NULL,
	finished_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
`

const migrationV2TaskRecords = `
CREATE TABLE IF NOT EXISTS task_records (
	run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	label TEXT NOT NULL,
	position INTEGER NOT NULL,
	task_name TEXT,
	error TEXT,
	estimated_tokens INTEGER NOT NULL DEFAULT 0,
	duration_ms INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (run_id, label)
);

CREATE INDEX IF NOT EXISTS idx_task_records_run_id ON task_records(run_id);
`

// RunSummary is one row of run history.
type RunSummary struct {
	ID          string
	ProjectIdea string
	TaskCount   int
	Succeeded   int
	Failed      int
	StartedAt   time.Time
	FinishedAt  time.Time
}

// SaveRun records the run and its per-task records in one transaction.
func (s *Store) SaveRun(report *models.RunReport) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO runs (id, project_idea, task_count, succeeded, failed, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, report.ID, report.Analysis.ProjectIdea, len(report.Records),
		len(report.Succeeded()), len(report.Failed()),
		formatTime(report.StartedAt), formatTime(report.FinishedAt))
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("insert run: %w", err)
	}

	for i, record := range report.Records {
		_, err = tx.Exec(`
			INSERT INTO task_records (run_id, label, position, task_name, error, estimated_tokens, duration_ms)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, report.ID, record.Label, i, record.Task.Name, record.Err,
			record.EstimatedTokens, record.Duration.Milliseconds())
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("insert task record %s: %w", record.Label, err)
		}
	}

	return tx.Commit()
}

// RecentRuns returns the newest runs first, at most limit of them.
func (s *Store) RecentRuns(limit int) ([]RunSummary, error) {
	rows, err := s.conn.Query(`
		SELECT id, project_idea, task_count, succeeded, failed, started_at, finished_at
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var summary RunSummary
		var started, finished string
		if err := rows.Scan(&summary.ID, &summary.ProjectIdea, &summary.TaskCount,
			&summary.Succeeded, &summary.Failed, &started, &finished); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		summary.StartedAt, _ = parseTime(started)
		summary.FinishedAt, _ = parseTime(finished)
		summaries = append(summaries, summary)
	}

	return summaries, rows.Err()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
