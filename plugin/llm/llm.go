// Package llm defines the streaming generation backend contract.
package llm

import "context"

// Role is the conversational role of a history message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleHuman     Role = "human"
	RoleAssistant Role = "assistant"
)

// Message is one prior turn handed to the backend as context.
type Message struct {
	Role    Role
	Content string
}

// StreamFunc receives one generated text fragment. Returning an error stops
// the stream; the backend must not keep producing afterwards.
type StreamFunc func(ctx context.Context, chunk string) error

// Backend produces a finite, ordered, non-restartable stream of text
// fragments for a prompt plus history. It may fail at any point after
// partial output.
type Backend interface {
	StreamChat(ctx context.Context, persona string, history []Message, message string, fn StreamFunc) error
}
