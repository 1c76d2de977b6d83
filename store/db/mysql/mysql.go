// Package mysql implements the store driver on go-sql-driver/mysql.
package mysql

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	// Registers the "mysql" database/sql driver.
	_ "github.com/go-sql-driver/mysql"
)

type DB struct {
	db *sql.DB
}

// New opens a connection pool against the given MySQL DSN.
func New(dsn string) (*DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open mysql database")
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
		"CREATE TABLE IF NOT EXISTS `conversation` (" +
			"`id` INT NOT NULL AUTO_INCREMENT PRIMARY KEY, " +
			"`uid` VARCHAR(256) NOT NULL UNIQUE, " +
			"`creator_id` INT NOT NULL, " +
			"`created_ts` TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP" +
			")",
		"CREATE TABLE IF NOT EXISTS `message` (" +
			"`id` INT NOT NULL AUTO_INCREMENT PRIMARY KEY, " +
			"`conversation_id` INT NOT NULL, " +
			"`creator_id` INT NOT NULL, " +
			"`kind` INT NOT NULL, " +
			"`content` TEXT NOT NULL, " +
			"`created_ts` TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP, " +
			"CONSTRAINT `fk_message_conversation` FOREIGN KEY (`conversation_id`) REFERENCES `conversation`(`id`), " +
			"INDEX `idx_message_conversation` (`conversation_id`), " +
			"INDEX `idx_message_creator_kind_ts` (`creator_id`, `kind`, `created_ts`)" +
			")",
	}
	for _, stmt := range stmts {
		if _, err := d.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "migrate mysql schema")
		}
	}
	return nil
}
