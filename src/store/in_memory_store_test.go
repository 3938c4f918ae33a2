package store

import (
	"context"
	"testing"
)

func seedMessages(t *testing.T, s *InMemoryStore) {
	t.Helper()
	msgs := []StoredMessage{
		{ChatID: 1, Timestamp: 3000, MessageID: 3, Username: "c", Text: "third"},
		{ChatID: 1, Timestamp: 1000, MessageID: 1, Username: "a", Text: "first"},
		{ChatID: 1, Timestamp: 2000, MessageID: 2, Username: "b", Text: "second"},
		{ChatID: 2, Timestamp: 1500, MessageID: 9, Username: "z", Text: "other chat"},
	}
	if err := s.Append(context.Background(), msgs); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}
}

func TestInMemoryStoreTimeQueryAscendingInclusive(t *testing.T) {
	s := NewInMemoryStore()
	seedMessages(t, s)

	msgs, err := s.Query(context.Background(), MessageQuery{ChatID: 1, StartTime: 1000, EndTime: 2000})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].MessageID != 1 || msgs[1].MessageID != 2 {
		t.Fatalf("unexpected order: %v then %v", msgs[0].MessageID, msgs[1].MessageID)
	}
}

func TestInMemoryStoreCountQueryMostRecent(t *testing.T) {
	s := NewInMemoryStore()
	seedMessages(t, s)

	msgs, err := s.Query(context.Background(), MessageQuery{ChatID: 1, Limit: 2})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	// The two most recent, still ascending.
	if msgs[0].MessageID != 2 || msgs[1].MessageID != 3 {
		t.Fatalf("unexpected messages: %d then %d", msgs[0].MessageID, msgs[1].MessageID)
	}
}

func TestInMemoryStoreIsolatesChats(t *testing.T) {
	s := NewInMemoryStore()
	seedMessages(t, s)

	msgs, err := s.Query(context.Background(), MessageQuery{ChatID: 2})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Text != "other chat" {
		t.Fatalf("unexpected result for chat 2: %+v", msgs)
	}
}

func TestInMemoryStoreEmptyChat(t *testing.T) {
	s := NewInMemoryStore()
	msgs, err := s.Query(context.Background(), MessageQuery{ChatID: 42})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("expected no messages, got %d", len(msgs))
	}
}
