package store

// Conversation is a single chat thread owned by one user. The UID is the
// only identifier exposed to clients.
type Conversation struct {
	ID        int32
	UID       string
	CreatorID int32
	CreatedTs int64
}

// FindConversation filters for GetConversation / ListConversations.
type FindConversation struct {
	ID        *int32
	UID       *string
	CreatorID *int32
	Limit     *int
}
