package store

// MessageKind is the stored message kind. Only two kinds exist.
type MessageKind int32

const (
	KindHuman     MessageKind = 1
	KindAssistant MessageKind = 2
)

func (k MessageKind) String() string {
	switch k {
	case KindHuman:
		return "human"
	case KindAssistant:
		return "assistant"
	default:
		return "unknown"
	}
}

// Message is a single message within a conversation. Content is written once
// at creation and, for assistant messages, overwritten exactly once when the
// turn that owns it finalizes.
type Message struct {
	ID             int32
	ConversationID int32
	CreatorID      int32
	Kind           MessageKind
	Content        string
	CreatedTs      int64
}

// CreateMessage is the payload for Store.CreateMessage.
type CreateMessage struct {
	ConversationID int32
	CreatorID      int32
	Kind           MessageKind
	Content        string
}

// FindMessage filters for ListMessages. BeforeID is an exclusive upper bound
// on the message id.
type FindMessage struct {
	ConversationID *int32
	CreatorID      *int32
	BeforeID       *int32
	Limit          *int
	OrderDesc      bool
}

// CountMessage filters for CountMessages. CreatedAfter is inclusive,
// CreatedBefore exclusive (unix seconds).
type CountMessage struct {
	CreatorID     *int32
	Kind          *MessageKind
	CreatedAfter  *int64
	CreatedBefore *int64
}
