package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

func newStubGenerator(baseURL string, timeout time.Duration) *OpenAIGenerator {
	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = baseURL + "/v1"
	return &OpenAIGenerator{
		client:  openai.NewClientWithConfig(cfg),
		model:   "gpt-4.1-mini",
		timeout: timeout,
	}
}

func completionJSON(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		ID:     "cmpl-1",
		Object: "chat.completion",
		Model:  "gpt-4.1-mini",
		Choices: []openai.ChatCompletionChoice{
			{
				Index:        0,
				Message:      openai.ChatCompletionMessage{Role: "assistant", Content: content},
				FinishReason: "stop",
			},
		},
	}
}

func TestCompleteSendsSystemPromptAndReturnsText(t *testing.T) {
	var captured openai.ChatCompletionRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %q, want /v1/chat/completions", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionJSON("요약입니다."))
	}))
	defer ts.Close()

	g := newStubGenerator(ts.URL, 5*time.Second)
	got, err := g.Complete(context.Background(), Request{
		System:      "비교해 주세요.",
		Messages:    []TurnMessage{{Role: "user", Content: "안녕"}},
		Temperature: 0.5,
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got != "요약입니다." {
		t.Fatalf("Complete() = %q, want the completion text", got)
	}

	if len(captured.Messages) != 2 {
		t.Fatalf("sent messages = %d, want system + user", len(captured.Messages))
	}
	if captured.Messages[0].Role != "system" || captured.Messages[0].Content != "비교해 주세요." {
		t.Fatalf("first message = %+v, want the system prompt", captured.Messages[0])
	}
	if captured.Temperature != 0.5 {
		t.Fatalf("temperature = %v, want 0.5", captured.Temperature)
	}
}

func TestCompleteSkipsBlankSystemPrompt(t *testing.T) {
	var captured openai.ChatCompletionRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionJSON("ok"))
	}))
	defer ts.Close()

	g := newStubGenerator(ts.URL, 5*time.Second)
	if _, err := g.Complete(context.Background(), Request{
		System:   "   ",
		Messages: []TurnMessage{{Role: "user", Content: "hi"}},
	}); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if len(captured.Messages) != 1 || captured.Messages[0].Role != "user" {
		t.Fatalf("sent messages = %+v, want the user turn only", captured.Messages)
	}
}

func TestCompleteEmptyChoicesIsNotAnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{ID: "cmpl-1", Object: "chat.completion"})
	}))
	defer ts.Close()

	g := newStubGenerator(ts.URL, 5*time.Second)
	got, err := g.Complete(context.Background(), Request{Messages: []TurnMessage{{Role: "user", Content: "hi"}}})
	if err != nil {
		t.Fatalf("Complete() error = %v, want nil for empty choices", err)
	}
	if got != "" {
		t.Fatalf("Complete() = %q, want empty completion", got)
	}
}

func TestCompleteBoundsSlowServiceByTimeout(t *testing.T) {
	released := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-released:
		}
	}))
	defer ts.Close()
	defer close(released)

	g := newStubGenerator(ts.URL, 100*time.Millisecond)
	start := time.Now()
	_, err := g.Complete(context.Background(), Request{Messages: []TurnMessage{{Role: "user", Content: "hi"}}})
	if err == nil {
		t.Fatalf("Complete() should fail when the service hangs")
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Fatalf("Complete() took %v, want the configured timeout bound", elapsed)
	}
}

func TestCompleteSurfacesAPIErrors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded","type":"insufficient_quota"}}`))
	}))
	defer ts.Close()

	g := newStubGenerator(ts.URL, 5*time.Second)
	if _, err := g.Complete(context.Background(), Request{Messages: []TurnMessage{{Role: "user", Content: "hi"}}}); err == nil {
		t.Fatalf("Complete() should surface API errors")
	}
}
