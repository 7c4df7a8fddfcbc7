package analyzer

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/cutsheet/internal/cache"
	"github.com/nguyentantai21042004/cutsheet/internal/llm"
	"github.com/nguyentantai21042004/cutsheet/internal/logger"
	"golang.org/x/sync/singleflight"
)

// Options controls the provider call and the retry policy.
type Options struct {
	Temperature    float32
	MaxTokens      int32
	MaxAttempts    int
	BaseDelay      time.Duration
	AttemptTimeout time.Duration
	// MinResponseLength is the length a response must exceed to be accepted.
	MinResponseLength int
}

// DefaultOptions mirrors the provider settings used in production.
func DefaultOptions() Options {
	return Options{
		Temperature:       0.3,
		MaxTokens:         2048,
		MaxAttempts:       3,
		BaseDelay:         2 * time.Second,
		AttemptTimeout:    60 * time.Second,
		MinResponseLength: 10,
	}
}

type implAnalyzer struct {
	completer llm.Completer
	cache     cache.Cache
	opts      Options
	logger    logger.Logger
	group     singleflight.Group
	sleep     func(ctx context.Context, d time.Duration) error
}

// New creates an Analyzer that caches results and retries rate limited calls.
func New(completer llm.Completer, c cache.Cache, opts Options, log logger.Logger) Analyzer {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 1
	}
	return &implAnalyzer{
		completer: completer,
		cache:     c,
		opts:      opts,
		logger:    log,
		sleep:     sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
