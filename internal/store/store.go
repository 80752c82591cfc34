package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A single connection plus busy_timeout is the only write
	// synchronization the app needs; schema init below is idempotent.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS vector (
		id                 INTEGER PRIMARY KEY CHECK (id = 1),
		start_date         TEXT NOT NULL,
		horizon_months     INTEGER NOT NULL DEFAULT 12,
		income_target      INTEGER NOT NULL DEFAULT 500,
		sleep_target_hours REAL,
		weight_min         REAL NOT NULL DEFAULT 73,
		weight_max         REAL NOT NULL DEFAULT 75,
		project_goal       TEXT NOT NULL DEFAULT '',
		max_hours_week     INTEGER NOT NULL DEFAULT 35,
		created_at         TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
		updated_at         TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS projects (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		name            TEXT NOT NULL UNIQUE COLLATE NOCASE,
		max_hours_week  INTEGER NOT NULL DEFAULT 0,
		project_goal    TEXT,
		is_active       INTEGER NOT NULL DEFAULT 0,
		created_at      TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
		updated_at      TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS days (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		date           TEXT NOT NULL UNIQUE,
		deep_minutes   INTEGER NOT NULL DEFAULT 0,
		noise_minutes  INTEGER NOT NULL DEFAULT 0,
		sleep_hours    REAL,
		sleep_quality  INTEGER,
		sleep_note     TEXT,
		steps          INTEGER NOT NULL DEFAULT 0,
		key_move       TEXT,
		created_at     TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
		updated_at     TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS day_training (
		id      INTEGER PRIMARY KEY AUTOINCREMENT,
		day_id  INTEGER NOT NULL REFERENCES days(id) ON DELETE CASCADE,
		type    TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_day_training_day ON day_training(day_id);

	CREATE TABLE IF NOT EXISTS day_project (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		day_id      INTEGER NOT NULL REFERENCES days(id) ON DELETE CASCADE,
		project_id  INTEGER NOT NULL REFERENCES projects(id),
		key_move    TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_day_project_day ON day_project(day_id);

	CREATE TABLE IF NOT EXISTS weeks (
		id                  INTEGER PRIMARY KEY AUTOINCREMENT,
		week_start          TEXT NOT NULL UNIQUE,
		trajectory_quality  INTEGER,
		note                TEXT,
		created_at          TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
		updated_at          TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS month_reviews (
		id                  INTEGER PRIMARY KEY AUTOINCREMENT,
		month               TEXT NOT NULL UNIQUE,
		income_actual       INTEGER,
		actual_income_done  INTEGER NOT NULL DEFAULT 0,
		trajectory_quality  INTEGER,
		note                TEXT,
		is_locked           INTEGER NOT NULL DEFAULT 0,
		locked_at           TEXT,
		created_at          TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
		updated_at          TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS month_week_income (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		month_review_id  INTEGER NOT NULL REFERENCES month_reviews(id) ON DELETE CASCADE,
		week_start       TEXT NOT NULL,
		income           INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_month_week_income_review ON month_week_income(month_review_id);

	CREATE TABLE IF NOT EXISTS note_items (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		note_date  TEXT NOT NULL,
		text       TEXT NOT NULL,
		done       INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
		updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);
	CREATE INDEX IF NOT EXISTS idx_note_items_date ON note_items(note_date);
	`
	_, err := s.db.Exec(ddl)
	return err
}

// DefaultDBPath returns ~/.config/vectoros/vectoros.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "vectoros", "vectoros.db"), nil
}
