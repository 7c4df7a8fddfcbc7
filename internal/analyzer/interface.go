package analyzer

import (
	"context"

	"github.com/nguyentantai21042004/cutsheet/internal/cache"
)

// Analyzer turns formatted cue text and a template into an edit list.
type Analyzer interface {
	// Analyze returns the edit list or an *Error describing why none was produced.
	Analyze(ctx context.Context, cueText, template string) (string, error)
	CacheStats() cache.Stats
}
