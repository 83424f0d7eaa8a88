// Package genai wraps the external text-generation service behind a small
// interface so orchestrators can be tested against doubles.
package genai

import "context"

// TurnMessage is one prior conversational turn passed as generation context.
type TurnMessage struct {
	Role    string
	Content string
}

// Request is a single non-streaming completion request.
type Request struct {
	System      string
	Messages    []TurnMessage
	Temperature float32
}

// Generator produces a completion for a request. An empty completion with a
// nil error means the service answered but had no usable text; callers
// decide the fallback. A non-nil error means the call itself failed.
type Generator interface {
	Complete(ctx context.Context, req Request) (string, error)
}
