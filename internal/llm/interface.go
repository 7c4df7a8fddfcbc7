package llm

import (
	"context"
	"errors"
)

// ErrRateLimited marks provider errors caused by quota or rate limiting.
var ErrRateLimited = errors.New("llm: rate limited")

// Request is a single two-message completion.
type Request struct {
	System      string
	User        string
	Temperature float32
	MaxTokens   int32
}

// Completer sends a prompt to a completion service and returns the generated text.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}
