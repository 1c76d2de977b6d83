// Package postgres implements the store driver on lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pkg/errors"

	// Registers the "postgres" database/sql driver.
	_ "github.com/lib/pq"
)

type DB struct {
	db *sql.DB
}

// New opens a connection pool against the given PostgreSQL DSN.
func New(dsn string) (*DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open postgres database")
	}
	return &DB{db: db}, nil
}

func (d *DB) GetDB() *sql.DB {
	return d.db
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS conversation (
			id         SERIAL PRIMARY KEY,
			uid        TEXT    NOT NULL UNIQUE,
			creator_id INTEGER NOT NULL,
			created_ts BIGINT  NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())
		)`,
		`CREATE TABLE IF NOT EXISTS message (
			id              SERIAL PRIMARY KEY,
			conversation_id INTEGER NOT NULL REFERENCES conversation(id),
			creator_id      INTEGER NOT NULL,
			kind            INTEGER NOT NULL,
			content         TEXT    NOT NULL DEFAULT '',
			created_ts      BIGINT  NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())
		)`,
		`CREATE INDEX IF NOT EXISTS idx_message_conversation ON message(conversation_id)`,
		`CREATE INDEX IF NOT EXISTS idx_message_creator_kind_ts ON message(creator_id, kind, created_ts)`,
	}
	for _, stmt := range stmts {
		if _, err := d.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "migrate postgres schema")
		}
	}
	return nil
}

// placeholder returns the $n positional marker for the n-th bound argument.
func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}
