package store

import (
	"context"
	"database/sql"
)

// Driver is the contract every SQL dialect implements. All operations are
// atomic at the single-row level; no multi-row transaction spans two calls.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	// Migrate creates the schema if it does not exist yet.
	Migrate(ctx context.Context) error

	CreateConversation(ctx context.Context, create *Conversation) (*Conversation, error)
	ListConversations(ctx context.Context, find *FindConversation) ([]*Conversation, error)

	CreateMessage(ctx context.Context, create *CreateMessage) (*Message, error)
	ListMessages(ctx context.Context, find *FindMessage) ([]*Message, error)
	UpdateMessageContent(ctx context.Context, id int32, content string) error
	CountMessages(ctx context.Context, count *CountMessage) (int, error)
}
