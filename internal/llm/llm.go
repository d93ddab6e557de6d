package llm

import (
	"context"
)

// Generator sends a single prompt to a text-generation model and returns the
// reply text. Implementations make exactly one blocking round trip.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Reply keys the model is instructed to return.
const (
	KeyMatchScore      = "JD Match_score"
	KeyMissingKeywords = "Missing Keywords"
	KeyProfileSummary  = "Profile Summary"
)

// RequiredKeys lists the reply keys in the order they are validated.
var RequiredKeys = []string{KeyMatchScore, KeyMissingKeywords, KeyProfileSummary}

// State tracks a single model request.
type State int

const (
	StateIdle State = iota
	StateSending
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSending:
		return "sending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
