package analyzer

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nguyentantai21042004/cutsheet/internal/cache"
	"github.com/nguyentantai21042004/cutsheet/internal/llm"
)

// Analyze serves repeated requests from the cache and collapses concurrent identical
// requests into one provider call. The shared call is not canceled when a single caller
// gives up, since other callers may still be waiting on it.
func (a *implAnalyzer) Analyze(ctx context.Context, cueText, template string) (string, error) {
	key := cacheKey(cueText, template)

	if result, ok := a.cache.Get(key); ok {
		a.logger.Info(ctx, "Returning cached analysis %s", key[:12])
		return result, nil
	}

	ch := a.group.DoChan(key, func() (interface{}, error) {
		return a.analyze(context.WithoutCancel(ctx), key, cueText, template)
	})

	select {
	case <-ctx.Done():
		return "", &Error{Kind: KindCanceled, Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		if res.Shared {
			a.logger.Debug(ctx, "Shared in-flight analysis %s", key[:12])
		}
		return res.Val.(string), nil
	}
}

func (a *implAnalyzer) CacheStats() cache.Stats {
	return a.cache.Stats()
}

func (a *implAnalyzer) analyze(ctx context.Context, key, cueText, template string) (string, error) {
	// a flight that finished just before this one started may have filled the cache
	if result, ok := a.cache.Get(key); ok {
		return result, nil
	}

	result, err := a.requestWithRetry(ctx, a.buildRequest(cueText, template))
	if err != nil {
		a.logger.Error(ctx, "Analysis failed: %v", err)
		return "", err
	}

	a.cache.Add(key, result)
	return result, nil
}

// requestWithRetry makes up to MaxAttempts calls. Rate limits back off exponentially,
// short responses move on to the next attempt, anything else aborts.
func (a *implAnalyzer) requestWithRetry(ctx context.Context, req llm.Request) (string, error) {
	var lastErr error

	for attempt := 0; attempt < a.opts.MaxAttempts; attempt++ {
		resp, err := a.complete(ctx, req)
		if err != nil {
			if !errors.Is(err, llm.ErrRateLimited) {
				return "", &Error{Kind: KindRequestFailed, Attempts: attempt + 1, Err: err}
			}

			lastErr = &Error{Kind: KindRateLimited, Attempts: attempt + 1, Err: err}
			if attempt == a.opts.MaxAttempts-1 {
				break
			}
			delay := a.opts.BaseDelay * time.Duration(1<<attempt)
			a.logger.Warn(ctx, "Provider rate limited (attempt %d/%d), retrying in %s", attempt+1, a.opts.MaxAttempts, delay)
			if err := a.sleep(ctx, delay); err != nil {
				return "", &Error{Kind: KindCanceled, Attempts: attempt + 1, Err: err}
			}
			continue
		}

		resp = strings.TrimSpace(resp)
		if a.valid(resp) {
			return resp, nil
		}
		a.logger.Warn(ctx, "Provider returned an unusable response (attempt %d/%d, %d chars)", attempt+1, a.opts.MaxAttempts, len(resp))
		lastErr = &Error{Kind: KindValidationFailed, Attempts: attempt + 1}
	}

	return "", &Error{Kind: KindRetriesExhausted, Attempts: a.opts.MaxAttempts, Err: lastErr}
}

func (a *implAnalyzer) complete(ctx context.Context, req llm.Request) (string, error) {
	if a.opts.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.AttemptTimeout)
		defer cancel()
	}
	return a.completer.Complete(ctx, req)
}

func (a *implAnalyzer) valid(resp string) bool {
	return resp != "" && len([]rune(resp)) > a.opts.MinResponseLength
}
