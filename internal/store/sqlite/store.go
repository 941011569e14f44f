// Package sqlite is the sqlite-backed implementation of the result
// store.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/aarongreenlee/prosemirror-noting/internal/checker"
	"github.com/aarongreenlee/prosemirror-noting/internal/store"
)

type Store struct {
	db *sql.DB
}

func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys and WAL mode
	if _, err := db.Exec(`
        PRAGMA foreign_keys = ON;
        PRAGMA journal_mode = WAL;
    `); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set PRAGMA: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Save(res store.Result) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO results (path, checksum, time) VALUES (?, ?, ?)
         ON CONFLICT(path) DO UPDATE SET checksum = excluded.checksum, time = excluded.time`,
		res.Path, res.Checksum, res.Time,
	); err != nil {
		return fmt.Errorf("failed to upsert result: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM matches WHERE path = ?`, res.Path); err != nil {
		return fmt.Errorf("failed to clear old matches: %w", err)
	}

	for _, m := range res.Matches {
		if _, err := tx.Exec(
			`INSERT INTO matches (path, id, from_pos, to_pos, text, rule, annotation)
             VALUES (?, ?, ?, ?, ?, ?, ?)`,
			res.Path, m.ID, m.From, m.To, m.Text, m.Rule, m.Annotation,
		); err != nil {
			return fmt.Errorf("failed to insert match: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Store) Get(path string) (*store.Result, error) {
	var res store.Result
	err := s.db.QueryRow(
		`SELECT path, checksum, time FROM results WHERE path = ?`, path,
	).Scan(&res.Path, &res.Checksum, &res.Time)

	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query result: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT id, from_pos, to_pos, text, rule, annotation
         FROM matches WHERE path = ? ORDER BY from_pos, id`, path,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m checker.Match
		if err := rows.Scan(&m.ID, &m.From, &m.To, &m.Text, &m.Rule, &m.Annotation); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		res.Matches = append(res.Matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating matches: %w", err)
	}

	return &res, nil
}

func (s *Store) Delete(path string) error {
	if _, err := s.db.Exec(`DELETE FROM results WHERE path = ?`, path); err != nil {
		return fmt.Errorf("failed to delete result: %w", err)
	}
	return nil
}

func (s *Store) Paths() ([]string, error) {
	rows, err := s.db.Query(`SELECT path FROM results`)
	if err != nil {
		return nil, fmt.Errorf("failed to query paths: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("failed to scan path: %w", err)
		}
		paths = append(paths, path)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating paths: %w", err)
	}
	return paths, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
