// Package conversation persists per-session message history. One record per
// session key, messages append-only in insertion order.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Role identifies who produced a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is a single conversational turn. Immutable once appended.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is the full history for one session key.
type Conversation struct {
	SessionKey string            `json:"sessionKey"`
	Messages   []Message         `json:"messages"`
	Metadata   map[string]string `json:"metadata"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// Outcome reports whether an append created the conversation or extended an
// existing one.
type Outcome string

const (
	OutcomeCreated  Outcome = "created"
	OutcomeAppended Outcome = "appended"
)

// ErrUnavailable indicates a persistence-layer failure (connection loss,
// timeout). A missing record is never an error; lookups report absence with
// a nil conversation.
var ErrUnavailable = errors.New("conversation storage unavailable")

// Store persists and retrieves conversations keyed by session key.
// Fingerprint-derived keys and explicitly known session ids share the same
// namespace; there is one lookup method for both.
type Store interface {
	// Find returns the conversation for key, or (nil, nil) when absent.
	Find(ctx context.Context, key string) (*Conversation, error)
	// Append upserts: it creates the conversation on first contact,
	// otherwise appends and bumps UpdatedAt. Appends for the same key are
	// serialized by the store and applied all-or-nothing.
	Append(ctx context.Context, key string, msg Message) (*Conversation, Outcome, error)
	CountAll(ctx context.Context) (int64, error)
	// CountUpdatedSince counts conversations whose UpdatedAt is at or after
	// the given instant.
	CountUpdatedSince(ctx context.Context, since time.Time) (int64, error)
	Close() error
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(ErrUnavailable, err))
}
