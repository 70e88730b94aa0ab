// Package sqlite implements the quiz repositories on a single SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

type Store struct {
	db *sql.DB
}

func NewStore(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		path = "quiz.db"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	store := &Store{db: db}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	// The sessions primary key is what makes "at most one live session per
	// user" hold in storage; Start additionally uses replace semantics so
	// the invariant is enforced by the operation, not only by the schema.
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id INTEGER PRIMARY KEY,
			display_name TEXT NOT NULL,
			math_score INTEGER NOT NULL DEFAULT 0,
			cs_score INTEGER NOT NULL DEFAULT 0,
			history_score INTEGER NOT NULL DEFAULT 0,
			total_score INTEGER NOT NULL DEFAULT 0,
			last_active_unix INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS sessions (
			user_id INTEGER PRIMARY KEY,
			subject TEXT NOT NULL,
			question_index INTEGER NOT NULL DEFAULT 0,
			correct_count INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS idx_users_total_score ON users(total_score DESC);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
