package genai

import (
	"strings"
	"time"
)

// New returns the OpenAI generator when an API key is configured, otherwise
// a mock so the service still runs end to end locally. The second return
// value names the selected backend for startup logging.
func New(apiKey, model string, timeout time.Duration) (Generator, string) {
	if strings.TrimSpace(apiKey) == "" {
		return NewMockGenerator(), "mock"
	}
	return NewOpenAIGenerator(apiKey, model, timeout), "openai"
}
