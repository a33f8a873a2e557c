// Package storage provides SQLite-based persistence for run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// RunEntry is one finished application run.
type RunEntry struct {
	ID        int64
	AppID     string
	Backend   string // "tui", "window", "ssh" or "headless"
	Frames    uint64
	Duration  time.Duration
	AvgFPS    float64
	Score     int // Zero for apps that do not keep a score
	CreatedAt time.Time
}

// AppStats contains aggregated statistics for one application.
type AppStats struct {
	AppID       string
	Runs        int
	TotalFrames int64
	AvgFPS      float64
	HighScore   int
	LastRun     time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			app_id TEXT NOT NULL,
			backend TEXT NOT NULL,
			frames INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			avg_fps REAL NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_app_id ON runs(app_id);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(app_id, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run. Returns the ID of the inserted record.
func (s *Store) SaveRun(run RunEntry) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (app_id, backend, frames, duration_ms, avg_fps, score)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.AppID, run.Backend, int64(run.Frames), run.Duration.Milliseconds(), run.AvgFPS, run.Score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRuns retrieves the latest runs of the given app, newest first.
func (s *Store) RecentRuns(appID string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT id, app_id, backend, frames, duration_ms, avg_fps, score, created_at
		 FROM runs
		 WHERE app_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		appID, limit,
	)
}

// TopScores retrieves the highest scoring runs of the given app.
func (s *Store) TopScores(appID string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT id, app_id, backend, frames, duration_ms, avg_fps, score, created_at
		 FROM runs
		 WHERE app_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		appID, limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]RunEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var frames, durationMS int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.AppID, &e.Backend, &frames, &durationMS, &e.AvgFPS, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Frames = uint64(frames)
		e.Duration = time.Duration(durationMS) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearRuns deletes all runs of the given app.
func (s *Store) ClearRuns(appID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE app_id = ?", appID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// Stats retrieves aggregated statistics for one app. An app without runs
// yields zero stats.
func (s *Store) Stats(appID string) (*AppStats, error) {
	stats := &AppStats{AppID: appID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(frames), 0), COALESCE(AVG(avg_fps), 0), COALESCE(MAX(score), 0)
		 FROM runs WHERE app_id = ?`,
		appID,
	).Scan(&stats.Runs, &stats.TotalFrames, &stats.AvgFPS, &stats.HighScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get app stats: %w", err)
	}

	var lastRun any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE app_id = ? ORDER BY id DESC LIMIT 1`,
		appID,
	).Scan(&lastRun)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last run: %w", err)
	}
	if err == nil {
		stats.LastRun = parseTime(lastRun)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
