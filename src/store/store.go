package store

import "context"

// StoredMessage is one chat message as persisted by the ingestion layer.
type StoredMessage struct {
	ChatID           int64
	Timestamp        int64 // milliseconds since epoch
	MessageID        int64 // unique within a chat
	UserID           int64
	Username         string
	Text             string
	ReplyToMessageID *int64
	ThreadID         *int64
	ForwardFromName  string
}

// MessageQuery selects messages from a single chat. A query is either
// time-bounded (StartTime/EndTime, inclusive, results ascending by
// timestamp) or count-bounded (Limit most recent messages, in whatever
// order the backend finds natural; callers normalize).
type MessageQuery struct {
	ChatID    int64
	StartTime int64 // inclusive, ms since epoch; 0 means unbounded
	EndTime   int64 // inclusive, ms since epoch; 0 means unbounded
	Limit     int   // 0 means no limit
}

// MessageStore defines the contract for message retrieval backends.
type MessageStore interface {
	Query(ctx context.Context, q MessageQuery) ([]StoredMessage, error)
}

// Appender is implemented by stores that also accept writes (seeding,
// ingestion, tests).
type Appender interface {
	Append(ctx context.Context, msgs []StoredMessage) error
}

// SchemaInitializer allows stores to expose optional schema/bootstrap routines.
type SchemaInitializer interface {
	CreateSchema(ctx context.Context) error
}
