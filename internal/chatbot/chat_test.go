package chatbot

import (
	"context"
	"errors"
	"testing"

	"github.com/UNOA-Project/UNOA-Back/internal/conversation"
	"github.com/UNOA-Project/UNOA-Back/internal/genai"
)

func TestRespondAppendsBothTurns(t *testing.T) {
	store := conversation.NewInMemoryStore()
	gen := genai.NewMockGenerator("안녕하세요!")
	svc := NewService(store, gen, 20)

	turn, err := svc.Respond(context.Background(), "k1", "안녕")
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if turn.Reply != "안녕하세요!" {
		t.Fatalf("reply = %q", turn.Reply)
	}
	if turn.Outcome != conversation.OutcomeCreated {
		t.Fatalf("first turn outcome = %q, want %q", turn.Outcome, conversation.OutcomeCreated)
	}

	c, err := store.Find(context.Background(), "k1")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(c.Messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(c.Messages))
	}
	if c.Messages[0].Role != conversation.RoleUser || c.Messages[1].Role != conversation.RoleAssistant {
		t.Fatalf("roles out of order: %+v", c.Messages)
	}
}

func TestRespondRejectsEmptyMessage(t *testing.T) {
	store := conversation.NewInMemoryStore()
	gen := genai.NewMockGenerator()
	svc := NewService(store, gen, 20)

	_, err := svc.Respond(context.Background(), "k1", "   ")
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("Respond() error = %v, want ErrInvalidRequest", err)
	}
	if gen.CallCount() != 0 {
		t.Fatalf("generator calls = %d, want 0", gen.CallCount())
	}
	if n, _ := store.CountAll(context.Background()); n != 0 {
		t.Fatalf("conversations = %d, want 0", n)
	}
}

func TestRespondKeepsUserTurnOnGenerationFailure(t *testing.T) {
	store := conversation.NewInMemoryStore()
	gen := genai.NewMockGenerator()
	gen.FailWith(errors.New("timeout"))
	svc := NewService(store, gen, 20)

	_, err := svc.Respond(context.Background(), "k1", "요금제 추천해줘")
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("Respond() error = %v, want ErrGenerationFailed", err)
	}

	c, err := store.Find(context.Background(), "k1")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(c.Messages) != 1 {
		t.Fatalf("messages = %d, want the user turn only", len(c.Messages))
	}
}

func TestRespondUsesFallbackOnEmptyCompletion(t *testing.T) {
	store := conversation.NewInMemoryStore()
	gen := genai.NewMockGenerator("")
	svc := NewService(store, gen, 20)

	turn, err := svc.Respond(context.Background(), "k1", "안녕")
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if turn.Reply != ChatFallback {
		t.Fatalf("reply = %q, want fallback", turn.Reply)
	}
}

func TestRespondTrimsContextToLimit(t *testing.T) {
	store := conversation.NewInMemoryStore()
	gen := genai.NewMockGenerator("ok")
	svc := NewService(store, gen, 4)

	for i := 0; i < 5; i++ {
		if _, err := svc.Respond(context.Background(), "k1", "질문"); err != nil {
			t.Fatalf("Respond() error = %v", err)
		}
	}

	if got := len(gen.LastCall().Messages); got != 4 {
		t.Fatalf("context messages = %d, want 4", got)
	}
}
