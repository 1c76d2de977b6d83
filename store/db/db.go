// Package db constructs the store driver selected by the runtime profile.
package db

import (
	"github.com/pkg/errors"

	"github.com/mentio/mentio/server/profile"
	"github.com/mentio/mentio/store"
	"github.com/mentio/mentio/store/db/mysql"
	"github.com/mentio/mentio/store/db/postgres"
	"github.com/mentio/mentio/store/db/sqlite"
)

// NewDriver creates the dialect driver named by the profile.
func NewDriver(p *profile.Profile) (store.Driver, error) {
	switch p.Driver {
	case "sqlite":
		return sqlite.New(p.DSN)
	case "mysql":
		return mysql.New(p.DSN)
	case "postgres":
		return postgres.New(p.DSN)
	default:
		return nil, errors.Errorf("unsupported database driver %q", p.Driver)
	}
}
