// Package stats computes point-in-time aggregates over the conversation
// store for the admin surface.
package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/UNOA-Project/UNOA-Back/internal/conversation"
)

// Stats is a snapshot taken at AsOf. ActiveInWindow counts conversations
// updated within the trailing window ending at AsOf, so results are only
// valid for that instant.
type Stats struct {
	TotalConversations int64     `json:"totalConversations"`
	ActiveInWindow     int64     `json:"activeToday"`
	AsOf               time.Time `json:"timestamp"`
}

// Service aggregates conversation counts. It never mutates a conversation.
type Service struct {
	store  conversation.Store
	window time.Duration
}

func NewService(store conversation.Store, window time.Duration) *Service {
	if window <= 0 {
		window = 24 * time.Hour
	}
	return &Service{store: store, window: window}
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	now := time.Now().UTC()

	total, err := s.store.CountAll(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("count total: %w", err)
	}
	active, err := s.store.CountUpdatedSince(ctx, now.Add(-s.window))
	if err != nil {
		return Stats{}, fmt.Errorf("count active: %w", err)
	}

	return Stats{TotalConversations: total, ActiveInWindow: active, AsOf: now}, nil
}
