package chatbot

import (
	"context"
	"fmt"
	"strings"

	"github.com/UNOA-Project/UNOA-Back/internal/conversation"
	"github.com/UNOA-Project/UNOA-Back/internal/genai"
)

// ChatFallback is the assistant reply recorded when generation answers with
// no usable text.
const ChatFallback = "죄송합니다. 지금은 답변을 생성하지 못했습니다. 잠시 후 다시 시도해 주세요."

const chatTemperature = 0.7

// Turn is the result of one chat exchange.
type Turn struct {
	SessionKey string               `json:"sessionKey"`
	Reply      string               `json:"reply"`
	Outcome    conversation.Outcome `json:"-"`
}

// Service runs chat turns: append the user message, generate a reply from
// the trailing conversation context, append the reply.
type Service struct {
	store        conversation.Store
	generator    genai.Generator
	contextLimit int
}

func NewService(store conversation.Store, generator genai.Generator, contextLimit int) *Service {
	if contextLimit <= 0 {
		contextLimit = 20
	}
	return &Service{store: store, generator: generator, contextLimit: contextLimit}
}

// Respond handles one user turn for sessionKey. The user message is
// appended before generation runs, so the log keeps the turn even when
// generation fails; no store access happens while the external call is in
// flight.
func (s *Service) Respond(ctx context.Context, sessionKey, text string) (Turn, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Turn{}, fmt.Errorf("%w: message must not be empty", ErrInvalidRequest)
	}

	conv, outcome, err := s.store.Append(ctx, sessionKey, conversation.Message{
		Role:    conversation.RoleUser,
		Content: text,
	})
	if err != nil {
		return Turn{}, fmt.Errorf("record user turn: %w", err)
	}

	reply, err := s.generator.Complete(ctx, genai.Request{
		System:      chatSystemPrompt,
		Messages:    trailingContext(conv.Messages, s.contextLimit),
		Temperature: chatTemperature,
	})
	if err != nil {
		return Turn{}, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if reply == "" {
		reply = ChatFallback
	}

	if _, _, err := s.store.Append(ctx, sessionKey, conversation.Message{
		Role:    conversation.RoleAssistant,
		Content: reply,
	}); err != nil {
		return Turn{}, fmt.Errorf("record assistant turn: %w", err)
	}

	return Turn{SessionKey: sessionKey, Reply: reply, Outcome: outcome}, nil
}

func trailingContext(msgs []conversation.Message, limit int) []genai.TurnMessage {
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]genai.TurnMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, genai.TurnMessage{Role: string(m.Role), Content: m.Content})
	}
	return out
}
