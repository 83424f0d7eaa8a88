package genai

import (
	"context"
	"sync"
)

// MockGenerator is a scripted generator for tests and keyless local runs.
type MockGenerator struct {
	mu      sync.Mutex
	replies []string
	err     error
	calls   []Request
}

func NewMockGenerator(replies ...string) *MockGenerator {
	return &MockGenerator{replies: replies}
}

// FailWith makes every subsequent call return err.
func (g *MockGenerator) FailWith(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.err = err
}

func (g *MockGenerator) Complete(_ context.Context, req Request) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, req)
	if g.err != nil {
		return "", g.err
	}
	if len(g.replies) == 0 {
		return "mock reply", nil
	}
	reply := g.replies[0]
	if len(g.replies) > 1 {
		g.replies = g.replies[1:]
	}
	return reply, nil
}

// CallCount reports how many completions were requested.
func (g *MockGenerator) CallCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

// LastCall returns the most recent request, or a zero Request.
func (g *MockGenerator) LastCall() Request {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.calls) == 0 {
		return Request{}
	}
	return g.calls[len(g.calls)-1]
}
