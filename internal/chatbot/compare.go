package chatbot

import (
	"context"
	"fmt"

	"github.com/UNOA-Project/UNOA-Back/internal/genai"
	"github.com/UNOA-Project/UNOA-Back/internal/plans"
)

// CompareFallback is returned when the generation service answers with no
// usable text. Masking an empty completion keeps the request a success.
const CompareFallback = "failed to generate summary"

const compareTemperature = 0.5

// Comparer produces an AI comparison summary for exactly two plans. It is
// independent of session state; the generator is injected at construction so
// tests can use doubles.
type Comparer struct {
	generator genai.Generator
}

func NewComparer(generator genai.Generator) *Comparer {
	return &Comparer{generator: generator}
}

// Compare validates the selection, builds the prompt, and runs one
// non-streaming generation. Any count other than two fails before the
// external call is made.
func (c *Comparer) Compare(ctx context.Context, selection []plans.Plan) (string, error) {
	if len(selection) != 2 {
		return "", fmt.Errorf("%w: exactly two plans are required, got %d", ErrInvalidRequest, len(selection))
	}

	prompt := BuildComparePrompt(selection[0], selection[1])
	summary, err := c.generator.Complete(ctx, genai.Request{
		System:      prompt,
		Temperature: compareTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if summary == "" {
		return CompareFallback, nil
	}
	return summary, nil
}
