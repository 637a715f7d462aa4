package container

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS container_entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			position INTEGER NOT NULL,
			kind INTEGER NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			loaded INTEGER NOT NULL DEFAULT 1
		);

		CREATE INDEX IF NOT EXISTS idx_container_entries_position
			ON container_entries(position);

		CREATE TABLE IF NOT EXISTS container_meta (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			synced_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO schema_version (version) VALUES (?)`,
		currentSchemaVersion)
	return err
}
