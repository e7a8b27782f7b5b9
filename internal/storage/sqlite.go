// Package storage provides SQLite-based persistence for generator batch runs
// and solved games.
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

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Run is one stored batch of generated levels.
type Run struct {
	ID                int64
	Difficulty        string
	BaseSeed          int64
	Total             int
	Successful        int
	Failed            int
	Valid             int
	Invalid           int
	AveragePathLength float64
	AverageAttempts   float64
	Duration          time.Duration
	CreatedAt         time.Time
}

// SuccessRate returns the fraction of levels generated without exhaustion.
func (r Run) SuccessRate() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Successful) / float64(r.Total)
}

// Play is one solved interactive game.
type Play struct {
	ID         int64
	Difficulty string
	Seed       int64
	Moves      int
	Duration   time.Duration
	CreatedAt  time.Time
}

// Summary aggregates every stored run of one difficulty.
type Summary struct {
	Difficulty        string
	Runs              int
	Levels            int
	Successful        int
	Valid             int
	AveragePathLength float64 // Weighted by successful levels
	AverageAttempts   float64 // Weighted by successful levels
	LastRun           time.Time
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
			difficulty TEXT NOT NULL,
			base_seed INTEGER NOT NULL,
			total INTEGER NOT NULL,
			successful INTEGER NOT NULL,
			failed INTEGER NOT NULL,
			valid INTEGER NOT NULL,
			invalid INTEGER NOT NULL,
			avg_path_length REAL NOT NULL DEFAULT 0,
			avg_attempts REAL NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_difficulty ON runs(difficulty);
		CREATE INDEX IF NOT EXISTS idx_runs_recent ON runs(difficulty, id DESC);
		CREATE TABLE IF NOT EXISTS plays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			difficulty TEXT NOT NULL,
			seed INTEGER NOT NULL,
			moves INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_plays_best ON plays(difficulty, moves ASC);
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

// SaveRun records a batch run. Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (difficulty, base_seed, total, successful, failed, valid, invalid, avg_path_length, avg_attempts, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Difficulty,
		r.BaseSeed,
		r.Total,
		r.Successful,
		r.Failed,
		r.Valid,
		r.Invalid,
		r.AveragePathLength,
		r.AverageAttempts,
		r.Duration.Milliseconds(),
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

// RecentRuns retrieves the newest runs, newest first. An empty difficulty
// selects runs of every difficulty.
func (s *Store) RecentRuns(difficulty string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, difficulty, base_seed, total, successful, failed, valid, invalid,
		        avg_path_length, avg_attempts, duration_ms, created_at
		 FROM runs
		 WHERE ? = '' OR difficulty = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		difficulty, difficulty, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMS int64
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.Difficulty,
			&r.BaseSeed,
			&r.Total,
			&r.Successful,
			&r.Failed,
			&r.Valid,
			&r.Invalid,
			&r.AveragePathLength,
			&r.AverageAttempts,
			&durationMS,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTimestamp(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// DifficultySummary aggregates all runs of one difficulty.
// A difficulty without runs yields a zero summary.
func (s *Store) DifficultySummary(difficulty string) (*Summary, error) {
	sum := &Summary{Difficulty: difficulty}

	var lastRun any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(total), 0), COALESCE(SUM(successful), 0), COALESCE(SUM(valid), 0),
		        COALESCE(SUM(avg_path_length * successful), 0), COALESCE(SUM(avg_attempts * successful), 0),
		        MAX(created_at)
		 FROM runs WHERE difficulty = ?`,
		difficulty,
	).Scan(&sum.Runs, &sum.Levels, &sum.Successful, &sum.Valid, &sum.AveragePathLength, &sum.AverageAttempts, &lastRun)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get difficulty summary: %w", err)
	}

	sum.finish(lastRun)
	return sum, nil
}

// AllSummaries retrieves a summary for every difficulty that has runs.
func (s *Store) AllSummaries() (map[string]*Summary, error) {
	rows, err := s.db.Query(
		`SELECT difficulty, COUNT(*), SUM(total), SUM(successful), SUM(valid),
		        SUM(avg_path_length * successful), SUM(avg_attempts * successful), MAX(created_at)
		 FROM runs
		 GROUP BY difficulty`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get summaries: %w", err)
	}
	defer rows.Close()

	summaries := make(map[string]*Summary)
	for rows.Next() {
		var sum Summary
		var lastRun any
		if err := rows.Scan(&sum.Difficulty, &sum.Runs, &sum.Levels, &sum.Successful, &sum.Valid,
			&sum.AveragePathLength, &sum.AverageAttempts, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan summary row: %w", err)
		}
		sum.finish(lastRun)
		summaries[sum.Difficulty] = &sum
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return summaries, nil
}

// finish turns the weighted sums scanned from SQL into averages.
func (sum *Summary) finish(lastRun any) {
	if sum.Successful > 0 {
		sum.AveragePathLength /= float64(sum.Successful)
		sum.AverageAttempts /= float64(sum.Successful)
	} else {
		sum.AveragePathLength = 0
		sum.AverageAttempts = 0
	}
	sum.LastRun = parseTimestamp(lastRun)
}

// ClearRuns deletes all runs of the given difficulty.
func (s *Store) ClearRuns(difficulty string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE difficulty = ?", difficulty)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// RunByID retrieves a single run. Returns an error wrapping sql.ErrNoRows
// when the ID is unknown.
func (s *Store) RunByID(id int64) (*Run, error) {
	var r Run
	var durationMS int64
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, difficulty, base_seed, total, successful, failed, valid, invalid,
		        avg_path_length, avg_attempts, duration_ms, created_at
		 FROM runs
		 WHERE id = ?`,
		id,
	).Scan(
		&r.ID,
		&r.Difficulty,
		&r.BaseSeed,
		&r.Total,
		&r.Successful,
		&r.Failed,
		&r.Valid,
		&r.Invalid,
		&r.AveragePathLength,
		&r.AverageAttempts,
		&durationMS,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: run %d not found: %w", id, err)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}

	r.Duration = time.Duration(durationMS) * time.Millisecond
	r.CreatedAt = parseTimestamp(createdAt)
	return &r, nil
}

// SavePlay records a solved game. Returns the ID of the inserted record.
func (s *Store) SavePlay(p Play) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO plays (difficulty, seed, moves, duration_ms) VALUES (?, ?, ?, ?)",
		p.Difficulty, p.Seed, p.Moves, p.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save play: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// BestPlays retrieves the best solved games of a difficulty.
// Results are ordered by moves, then by time.
func (s *Store) BestPlays(difficulty string, limit int) ([]Play, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, difficulty, seed, moves, duration_ms, created_at
		 FROM plays
		 WHERE difficulty = ?
		 ORDER BY moves ASC, duration_ms ASC
		 LIMIT ?`,
		difficulty, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query plays: %w", err)
	}
	defer rows.Close()

	var plays []Play
	for rows.Next() {
		var p Play
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&p.ID, &p.Difficulty, &p.Seed, &p.Moves, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.Duration = time.Duration(durationMS) * time.Millisecond
		p.CreatedAt = parseTimestamp(createdAt)
		plays = append(plays, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return plays, nil
}

// parseTimestamp handles the driver returning either time.Time or a string.
func parseTimestamp(v any) time.Time {
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
