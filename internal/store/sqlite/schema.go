package sqlite

import (
	"database/sql"
	"fmt"
)

const schemaVersion = 1

func initSchema(db *sql.DB) error {
	// Check schema version
	var version int
	err := db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	if version == schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := createTables(tx); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("failed to update schema version: %w", err)
	}

	return tx.Commit()
}

func createTables(tx *sql.Tx) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS results (
            path TEXT PRIMARY KEY,
            checksum BLOB NOT NULL,
            time INTEGER NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS matches (
            path TEXT NOT NULL,
            id TEXT NOT NULL,
            from_pos INTEGER NOT NULL,
            to_pos INTEGER NOT NULL,
            text TEXT NOT NULL,
            rule TEXT NOT NULL,
            annotation TEXT NOT NULL,
            FOREIGN KEY (path) REFERENCES results(path) ON DELETE CASCADE,
            PRIMARY KEY (path, id)
        )`,
		`CREATE INDEX IF NOT EXISTS idx_matches_path
            ON matches(path)`,
	}

	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to execute %q: %w", query, err)
		}
	}
	return nil
}
