// Package sqlite implements the store driver on modernc.org/sqlite.
package sqlite

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	// Registers the pure-Go "sqlite" database/sql driver.
	_ "modernc.org/sqlite"
)

type DB struct {
	db *sql.DB
}

// New opens (or creates) the sqlite database at the given DSN.
func New(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "open sqlite database %q", dsn)
	}
	// sqlite handles a single writer; keep the pool at one connection to
	// avoid SQLITE_BUSY under concurrent turns.
	db.SetMaxOpenConns(1)
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
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			uid        TEXT    NOT NULL UNIQUE,
			creator_id INTEGER NOT NULL,
			created_ts BIGINT  NOT NULL DEFAULT (strftime('%s', 'now'))
		)`,
		`CREATE TABLE IF NOT EXISTS message (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			conversation_id INTEGER NOT NULL REFERENCES conversation(id),
			creator_id      INTEGER NOT NULL,
			kind            INTEGER NOT NULL,
			content         TEXT    NOT NULL DEFAULT '',
			created_ts      BIGINT  NOT NULL DEFAULT (strftime('%s', 'now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_message_conversation ON message(conversation_id)`,
		`CREATE INDEX IF NOT EXISTS idx_message_creator_kind_ts ON message(creator_id, kind, created_ts)`,
	}
	for _, stmt := range stmts {
		if _, err := d.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "migrate sqlite schema")
		}
	}
	return nil
}
