package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies the schema. Every statement is idempotent, so it runs on
// each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id            TEXT PRIMARY KEY,
		short_id      TEXT NOT NULL DEFAULT '',
		name          TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT '',
		status        TEXT NOT NULL DEFAULT 'active'
		              CHECK(status IN ('active','paused','done','archived')),
		planned_start TEXT,
		planned_end   TEXT,
		buffer_ratio  REAL NOT NULL DEFAULT 0.5,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_projects_short_id ON projects(short_id) WHERE short_id != ''`,

	`CREATE TABLE IF NOT EXISTS wbs_items (
		id               TEXT PRIMARY KEY,
		project_id       TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		parent_id        TEXT REFERENCES wbs_items(id) ON DELETE CASCADE,
		code             TEXT NOT NULL DEFAULT '',
		title            TEXT NOT NULL,
		type             TEXT NOT NULL DEFAULT 'task'
		                 CHECK(type IN ('project','phase','task','subtask')),
		status           TEXT NOT NULL DEFAULT 'pending'
		                 CHECK(status IN ('pending','in_progress','completed','blocked')),
		estimated_hours  REAL,
		aggressive_hours REAL,
		safe_hours       REAL,
		actual_hours     REAL,
		planned_start    TEXT,
		planned_end      TEXT,
		sort_order       INTEGER NOT NULL DEFAULT 0,
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_wbs_items_project ON wbs_items(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_wbs_items_parent ON wbs_items(parent_id)`,

	`CREATE TABLE IF NOT EXISTS wbs_dependencies (
		predecessor_id TEXT NOT NULL REFERENCES wbs_items(id) ON DELETE CASCADE,
		successor_id   TEXT NOT NULL REFERENCES wbs_items(id) ON DELETE CASCADE,
		lag_days       INTEGER NOT NULL DEFAULT 0,
		created_at     TEXT NOT NULL,
		PRIMARY KEY (predecessor_id, successor_id),
		CHECK(predecessor_id != successor_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_wbs_dependencies_successor ON wbs_dependencies(successor_id)`,

	`CREATE TABLE IF NOT EXISTS buffer_history (
		id               TEXT PRIMARY KEY,
		project_id       TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		consumed_percent INTEGER NOT NULL,
		progress_percent INTEGER NOT NULL,
		fever            TEXT NOT NULL CHECK(fever IN ('green','yellow','red')),
		recorded_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_buffer_history_project ON buffer_history(project_id, recorded_at)`,

	// Assignee arrived after the first release.
	`ALTER TABLE wbs_items ADD COLUMN assignee TEXT NOT NULL DEFAULT ''`,
}
