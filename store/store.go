// Package store provides durable access to conversations and messages.
package store

import "context"

// Store is the database-independent access layer used by the rest of the
// service. It delegates to a dialect-specific Driver.
type Store struct {
	driver Driver
}

// New creates a Store backed by the given driver.
func New(driver Driver) *Store {
	return &Store{driver: driver}
}

// Migrate creates the schema if needed.
func (s *Store) Migrate(ctx context.Context) error {
	return s.driver.Migrate(ctx)
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.driver.Close()
}
