package chatbot

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/mentio/mentio/plugin/llm"
	"github.com/mentio/mentio/store"
)

// fakeDriver is an in-memory store.Driver for orchestrator tests.
type fakeDriver struct {
	conversations []*store.Conversation
	messages      []*store.Message
	nextID        int32
	nextTs        int64

	failAssistantInsert bool
	failUpdate          bool
	updates             map[int32]string
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{updates: map[int32]string{}}
}

func (d *fakeDriver) addConversation(uid string, creatorID int32) *store.Conversation {
	d.nextID++
	c := &store.Conversation{ID: d.nextID, UID: uid, CreatorID: creatorID, CreatedTs: d.tick()}
	d.conversations = append(d.conversations, c)
	return c
}

func (d *fakeDriver) addMessage(conversationID, creatorID int32, kind store.MessageKind, content string, createdTs int64) *store.Message {
	d.nextID++
	m := &store.Message{
		ID:             d.nextID,
		ConversationID: conversationID,
		CreatorID:      creatorID,
		Kind:           kind,
		Content:        content,
		CreatedTs:      createdTs,
	}
	d.messages = append(d.messages, m)
	return m
}

func (d *fakeDriver) tick() int64 {
	d.nextTs++
	return d.nextTs
}

func (d *fakeDriver) GetDB() *sql.DB { return nil }
func (d *fakeDriver) Close() error   { return nil }

func (d *fakeDriver) Migrate(context.Context) error { return nil }

func (d *fakeDriver) CreateConversation(_ context.Context, create *store.Conversation) (*store.Conversation, error) {
	c := d.addConversation(create.UID, create.CreatorID)
	return c, nil
}

func (d *fakeDriver) ListConversations(_ context.Context, find *store.FindConversation) ([]*store.Conversation, error) {
	var list []*store.Conversation
	for i := len(d.conversations) - 1; i >= 0; i-- {
		c := d.conversations[i]
		if find.ID != nil && c.ID != *find.ID {
			continue
		}
		if find.UID != nil && c.UID != *find.UID {
			continue
		}
		if find.CreatorID != nil && c.CreatorID != *find.CreatorID {
			continue
		}
		list = append(list, c)
		if find.Limit != nil && len(list) >= *find.Limit {
			break
		}
	}
	return list, nil
}

func (d *fakeDriver) CreateMessage(_ context.Context, create *store.CreateMessage) (*store.Message, error) {
	if d.failAssistantInsert && create.Kind == store.KindAssistant {
		return nil, errors.New("disk full")
	}
	m := d.addMessage(create.ConversationID, create.CreatorID, create.Kind, create.Content, d.tick())
	return m, nil
}

func (d *fakeDriver) ListMessages(_ context.Context, find *store.FindMessage) ([]*store.Message, error) {
	var list []*store.Message
	match := func(m *store.Message) bool {
		if find.ConversationID != nil && m.ConversationID != *find.ConversationID {
			return false
		}
		if find.CreatorID != nil && m.CreatorID != *find.CreatorID {
			return false
		}
		if find.BeforeID != nil && m.ID >= *find.BeforeID {
			return false
		}
		return true
	}
	if find.OrderDesc {
		for i := len(d.messages) - 1; i >= 0; i-- {
			if match(d.messages[i]) {
				list = append(list, d.messages[i])
				if find.Limit != nil && len(list) >= *find.Limit {
					break
				}
			}
		}
	} else {
		for _, m := range d.messages {
			if match(m) {
				list = append(list, m)
				if find.Limit != nil && len(list) >= *find.Limit {
					break
				}
			}
		}
	}
	return list, nil
}

func (d *fakeDriver) UpdateMessageContent(_ context.Context, id int32, content string) error {
	if d.failUpdate {
		return errors.New("connection reset")
	}
	for _, m := range d.messages {
		if m.ID == id {
			m.Content = content
			d.updates[id] = content
			return nil
		}
	}
	return errors.Errorf("message %d not found", id)
}

func (d *fakeDriver) CountMessages(_ context.Context, count *store.CountMessage) (int, error) {
	n := 0
	for _, m := range d.messages {
		if count.CreatorID != nil && m.CreatorID != *count.CreatorID {
			continue
		}
		if count.Kind != nil && m.Kind != *count.Kind {
			continue
		}
		if count.CreatedAfter != nil && m.CreatedTs < *count.CreatedAfter {
			continue
		}
		if count.CreatedBefore != nil && m.CreatedTs >= *count.CreatedBefore {
			continue
		}
		n++
	}
	return n, nil
}

// fakeBackend replays a scripted fragment sequence, then returns err.
type fakeBackend struct {
	fragments []string
	err       error

	gotPersona string
	gotHistory []llm.Message
	gotMessage string
}

func (b *fakeBackend) StreamChat(ctx context.Context, persona string, history []llm.Message, message string, fn llm.StreamFunc) error {
	b.gotPersona, b.gotHistory, b.gotMessage = persona, history, message
	for _, fragment := range b.fragments {
		if err := fn(ctx, fragment); err != nil {
			return err
		}
	}
	return b.err
}

// fakeIdentity resolves a fixed token to a fixed user.
type fakeIdentity struct {
	token  string
	userID int32
}

func (f *fakeIdentity) ResolveUserID(_ context.Context, token string) (int32, error) {
	if token != f.token {
		return 0, errors.New("signature is invalid")
	}
	return f.userID, nil
}

// fakeEntitlements returns a fixed entitlement, or an error when the
// subscription backend is unreachable.
type fakeEntitlements struct {
	paid bool
	err  error
}

func (f *fakeEntitlements) HasPaidSubscription(context.Context, string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.paid, nil
}

// collectSink records relayed fragments and can simulate a disconnect after
// a number of writes.
type collectSink struct {
	fragments []string
	failAfter int // 0 = never fail
}

func (s *collectSink) Fragment(_ context.Context, text string) error {
	if s.failAfter > 0 && len(s.fragments) >= s.failAfter {
		return errors.New("broken pipe")
	}
	s.fragments = append(s.fragments, text)
	return nil
}
