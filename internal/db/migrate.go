package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent and
// valid on both SQLite and Postgres, so it is safe to run on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		device_id          TEXT PRIMARY KEY,
		child_name         TEXT NOT NULL,
		child_age          INTEGER NOT NULL CHECK(child_age BETWEEN 1 AND 8),
		illness_types      TEXT NOT NULL DEFAULT '[]',
		child_energy       TEXT NOT NULL CHECK(child_energy IN ('Low','Medium','Okay')),
		parent_energy      TEXT NOT NULL CHECK(parent_energy IN ('Low','Medium','High')),
		medications        TEXT NOT NULL DEFAULT '[]',
		updated_at         TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS day_records (
		device_id          TEXT NOT NULL,
		date               TEXT NOT NULL,
		profile            TEXT NOT NULL,
		medications        TEXT NOT NULL DEFAULT '[]',
		created_at         TEXT NOT NULL,
		PRIMARY KEY (device_id, date)
	)`,

	`CREATE TABLE IF NOT EXISTS plan_items (
		id                 TEXT PRIMARY KEY,
		device_id          TEXT NOT NULL,
		date               TEXT NOT NULL,
		position           INTEGER NOT NULL DEFAULT 0,
		type               TEXT NOT NULL CHECK(type IN ('activity','medication','meal','rest')),
		title              TEXT NOT NULL,
		description        TEXT NOT NULL DEFAULT '',
		time               TEXT NOT NULL,
		category           TEXT NOT NULL DEFAULT '',
		tags               TEXT NOT NULL DEFAULT '[]',
		status             TEXT NOT NULL DEFAULT 'pending' CHECK(status IN ('pending','completed','skipped')),
		is_gentle          INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (device_id, date) REFERENCES day_records(device_id, date) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS incidents (
		id                 TEXT PRIMARY KEY,
		device_id          TEXT NOT NULL,
		date               TEXT NOT NULL,
		occurred_at        TEXT NOT NULL,
		category           TEXT,
		description        TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (device_id, date) REFERENCES day_records(device_id, date) ON DELETE CASCADE
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plan_items_day ON plan_items(device_id, date, time, position)`,
	`CREATE INDEX IF NOT EXISTS idx_incidents_day ON incidents(device_id, date, occurred_at)`,
	`CREATE INDEX IF NOT EXISTS idx_day_records_device ON day_records(device_id, date)`,
}
