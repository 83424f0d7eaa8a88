package conversation

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryStore is a simple in-process store for local/dev use and tests.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Conversation
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string]*Conversation)}
}

func (s *InMemoryStore) Find(_ context.Context, key string) (*Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.records[key]
	if !ok {
		return nil, nil
	}
	return cloneConversation(c), nil
}

func (s *InMemoryStore) Append(_ context.Context, key string, msg Message) (*Conversation, Outcome, error) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	c, ok := s.records[key]
	if !ok {
		c = &Conversation{
			SessionKey: key,
			Messages:   []Message{msg},
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		s.records[key] = c
		return cloneConversation(c), OutcomeCreated, nil
	}

	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = now
	return cloneConversation(c), OutcomeAppended, nil
}

func (s *InMemoryStore) CountAll(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.records)), nil
}

func (s *InMemoryStore) CountUpdatedSince(_ context.Context, since time.Time) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, c := range s.records {
		if !c.UpdatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (s *InMemoryStore) Close() error { return nil }

func cloneConversation(c *Conversation) *Conversation {
	out := *c
	out.Messages = make([]Message, len(c.Messages))
	copy(out.Messages, c.Messages)
	if c.Metadata != nil {
		out.Metadata = maps.Clone(c.Metadata)
	}
	return &out
}
