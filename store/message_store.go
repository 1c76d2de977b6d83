package store

import "context"

// CreateMessage persists a new message to a conversation.
func (s *Store) CreateMessage(ctx context.Context, create *CreateMessage) (*Message, error) {
	return s.driver.CreateMessage(ctx, create)
}

// ListMessages returns messages matching the given filter, ordered by id
// ascending unless find.OrderDesc is set.
func (s *Store) ListMessages(ctx context.Context, find *FindMessage) ([]*Message, error) {
	return s.driver.ListMessages(ctx, find)
}

// UpdateMessageContent replaces a message's content. This is the only
// mutation the schema permits and is called exactly once per assistant
// message, at turn finalization.
func (s *Store) UpdateMessageContent(ctx context.Context, id int32, content string) error {
	return s.driver.UpdateMessageContent(ctx, id, content)
}

// CountMessages counts messages matching the given filter.
func (s *Store) CountMessages(ctx context.Context, count *CountMessage) (int, error) {
	return s.driver.CountMessages(ctx, count)
}
