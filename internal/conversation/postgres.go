package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists conversations in PostgreSQL. Appends are a single
// upsert statement, so Postgres row locking serializes concurrent appends
// for the same session key.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	if err := initConversationSchema(ctx, pool); err != nil {
		return nil, err
	}
	return &PostgresStore{pool: pool}, nil
}

func initConversationSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS conversations (
			session_key TEXT PRIMARY KEY,
			messages JSONB NOT NULL DEFAULT '[]'::jsonb,
			metadata JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		`CREATE INDEX IF NOT EXISTS idx_conversations_updated_at ON conversations (updated_at);`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init conversation schema failed on %q: %w", stmt, err)
		}
	}
	return nil
}

func (s *PostgresStore) Find(ctx context.Context, key string) (*Conversation, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT session_key, messages, metadata, created_at, updated_at
		 FROM conversations WHERE session_key = $1`,
		key,
	)
	c, err := scanConversation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, unavailable("find conversation", err)
	}
	return c, nil
}

func (s *PostgresStore) Append(ctx context.Context, key string, msg Message) (*Conversation, Outcome, error) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, "", fmt.Errorf("marshal message: %w", err)
	}

	now := time.Now().UTC()
	// xmax = 0 only for freshly inserted rows, which distinguishes first
	// contact from a returning session in one round trip.
	row := s.pool.QueryRow(ctx,
		`INSERT INTO conversations (session_key, messages, created_at, updated_at)
		 VALUES ($1, jsonb_build_array($2::jsonb), $3, $3)
		 ON CONFLICT (session_key) DO UPDATE
		 SET messages = conversations.messages || $2::jsonb, updated_at = $3
		 RETURNING session_key, messages, metadata, created_at, updated_at, (xmax = 0)`,
		key, payload, now,
	)

	var (
		c        Conversation
		rawMsgs  []byte
		rawMeta  []byte
		inserted bool
	)
	if err := row.Scan(&c.SessionKey, &rawMsgs, &rawMeta, &c.CreatedAt, &c.UpdatedAt, &inserted); err != nil {
		return nil, "", unavailable("append message", err)
	}
	if err := decodeConversationColumns(&c, rawMsgs, rawMeta); err != nil {
		return nil, "", err
	}

	outcome := OutcomeAppended
	if inserted {
		outcome = OutcomeCreated
	}
	return &c, outcome, nil
}

func (s *PostgresStore) CountAll(ctx context.Context) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM conversations`).Scan(&n); err != nil {
		return 0, unavailable("count conversations", err)
	}
	return n, nil
}

func (s *PostgresStore) CountUpdatedSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM conversations WHERE updated_at >= $1`, since,
	).Scan(&n)
	if err != nil {
		return 0, unavailable("count active conversations", err)
	}
	return n, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func scanConversation(row pgx.Row) (*Conversation, error) {
	var (
		c       Conversation
		rawMsgs []byte
		rawMeta []byte
	)
	if err := row.Scan(&c.SessionKey, &rawMsgs, &rawMeta, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if err := decodeConversationColumns(&c, rawMsgs, rawMeta); err != nil {
		return nil, err
	}
	return &c, nil
}

func decodeConversationColumns(c *Conversation, rawMsgs, rawMeta []byte) error {
	if err := json.Unmarshal(rawMsgs, &c.Messages); err != nil {
		return fmt.Errorf("decode messages column: %w", err)
	}
	if len(rawMeta) > 0 {
		if err := json.Unmarshal(rawMeta, &c.Metadata); err != nil {
			return fmt.Errorf("decode metadata column: %w", err)
		}
	}
	return nil
}
