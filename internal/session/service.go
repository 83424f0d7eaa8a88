// Package session resolves client identity to conversation history. Absence
// of a record is a normal outcome everywhere here, never an error.
package session

import (
	"context"
	"fmt"

	"github.com/UNOA-Project/UNOA-Back/internal/conversation"
	"github.com/UNOA-Project/UNOA-Back/internal/fingerprint"
)

// View is the history returned for a resolved session. A never-seen session
// yields a well-formed view with its derived key, empty messages, and nil
// metadata.
type View struct {
	SessionKey string                 `json:"sessionKey"`
	Messages   []conversation.Message `json:"messages"`
	Metadata   map[string]string      `json:"metadata"`
}

// Service exposes read-only, idempotent history lookups.
type Service struct {
	store conversation.Store
}

func NewService(store conversation.Store) *Service {
	return &Service{store: store}
}

// GetByFingerprint derives the session key from (ip, user-agent) and looks
// it up.
func (s *Service) GetByFingerprint(ctx context.Context, ip, userAgent string) (View, error) {
	key := fingerprint.Derive(ip, userAgent)
	conv, err := s.store.Find(ctx, key)
	if err != nil {
		return View{}, fmt.Errorf("lookup by fingerprint: %w", err)
	}
	if conv == nil {
		return View{SessionKey: key, Messages: []conversation.Message{}}, nil
	}
	return View{SessionKey: key, Messages: conv.Messages, Metadata: conv.Metadata}, nil
}

// GetByID looks up an explicit session id. Ids and fingerprint-derived keys
// share one namespace in the store.
func (s *Service) GetByID(ctx context.Context, id string) ([]conversation.Message, error) {
	conv, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup by id: %w", err)
	}
	if conv == nil {
		return []conversation.Message{}, nil
	}
	return conv.Messages, nil
}
