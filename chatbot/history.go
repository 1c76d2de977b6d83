package chatbot

import (
	"context"

	"github.com/mentio/mentio/plugin/llm"
	"github.com/mentio/mentio/store"
)

// historyWindow is the maximum number of prior messages handed to the
// generation backend as context.
const historyWindow = 10

// HistoryBuilder reconstructs the bounded recent-history window of a
// conversation.
type HistoryBuilder struct {
	store  *store.Store
	window int
}

// NewHistoryBuilder builds a HistoryBuilder with the default window.
func NewHistoryBuilder(s *store.Store) *HistoryBuilder {
	return &HistoryBuilder{store: s, window: historyWindow}
}

// Build returns up to window messages of the conversation with id strictly
// below beforeID, in chronological order. The result is re-derivable on
// retry; an empty window is valid for a new conversation.
func (b *HistoryBuilder) Build(ctx context.Context, conversationID, creatorID, beforeID int32) ([]llm.Message, error) {
	limit := b.window
	msgs, err := b.store.ListMessages(ctx, &store.FindMessage{
		ConversationID: &conversationID,
		CreatorID:      &creatorID,
		BeforeID:       &beforeID,
		Limit:          &limit,
		OrderDesc:      true,
	})
	if err != nil {
		return nil, err
	}

	// Newest 10 selected above; flip back to chronological order.
	history := make([]llm.Message, 0, len(msgs))
	for i := len(msgs) - 1; i >= 0; i-- {
		m := msgs[i]
		role := llm.RoleHuman
		if m.Kind == store.KindAssistant {
			role = llm.RoleAssistant
		}
		history = append(history, llm.Message{Role: role, Content: m.Content})
	}
	return history, nil
}
