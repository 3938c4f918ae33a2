package store

import (
	"context"
	"sort"
	"sync"
)

// InMemoryStore keeps messages per chat in process memory. It backs tests
// and local experiments.
type InMemoryStore struct {
	mu    sync.RWMutex
	chats map[int64][]StoredMessage
}

// NewInMemoryStore returns an empty in-memory message store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{chats: make(map[int64][]StoredMessage)}
}

// Append stores messages under their chat ids.
func (s *InMemoryStore) Append(_ context.Context, msgs []StoredMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range msgs {
		s.chats[m.ChatID] = append(s.chats[m.ChatID], m)
	}
	return nil
}

// Query returns matching messages in ascending timestamp order. Count
// queries return the Limit most recent messages, still ascending.
func (s *InMemoryStore) Query(_ context.Context, q MessageQuery) ([]StoredMessage, error) {
	s.mu.RLock()
	stored := s.chats[q.ChatID]
	msgs := make([]StoredMessage, len(stored))
	copy(msgs, stored)
	s.mu.RUnlock()

	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].Timestamp < msgs[j].Timestamp })

	filtered := msgs[:0]
	for _, m := range msgs {
		if q.StartTime != 0 && m.Timestamp < q.StartTime {
			continue
		}
		if q.EndTime != 0 && m.Timestamp > q.EndTime {
			continue
		}
		filtered = append(filtered, m)
	}
	if q.Limit > 0 && len(filtered) > q.Limit {
		filtered = filtered[len(filtered)-q.Limit:]
	}
	return filtered, nil
}

var (
	_ MessageStore = (*InMemoryStore)(nil)
	_ Appender     = (*InMemoryStore)(nil)
)
