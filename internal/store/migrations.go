package store

import "fmt"

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// One row per frame loop run
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL DEFAULT 'camera',
			started_at DATETIME NOT NULL,
			ended_at DATETIME,
			frames INTEGER NOT NULL DEFAULT 0,
			hands INTEGER NOT NULL DEFAULT 0
		)`,

		// Signal journal - a row each time the emitted label changes
		`CREATE TABLE IF NOT EXISTS signals (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			frame INTEGER NOT NULL,
			kind TEXT NOT NULL,
			label TEXT NOT NULL,
			text TEXT NOT NULL,
			pitch REAL NOT NULL DEFAULT 0,
			yaw REAL NOT NULL DEFAULT 0,
			roll REAL NOT NULL DEFAULT 0,
			cursor_x REAL,
			cursor_y REAL,
			created_at DATETIME NOT NULL
		)`,

		// Actions table - plugin actions fired when a signal label appears
		`CREATE TABLE IF NOT EXISTS actions (
			id TEXT PRIMARY KEY,
			label TEXT NOT NULL,
			plugin_name TEXT NOT NULL,
			action_name TEXT NOT NULL,
			config TEXT NOT NULL DEFAULT '{}',
			enabled INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_signals_session_id ON signals(session_id, frame)`,
		`CREATE INDEX IF NOT EXISTS idx_actions_label ON actions(label)`,
	}

	for i, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}

	return nil
}
