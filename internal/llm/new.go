package llm

import (
	"errors"
	"sync"

	"github.com/nguyentantai21042004/cutsheet/internal/logger"
)

type implGemini struct {
	apiKeys []string
	model   string
	logger  logger.Logger

	mu         sync.Mutex
	currentKey int
}

// NewGemini creates a Completer that rotates through the supplied Gemini API keys.
func NewGemini(apiKeys []string, model string, log logger.Logger) (Completer, error) {
	if len(apiKeys) == 0 {
		return nil, errors.New("llm: at least one API key is required")
	}
	return &implGemini{
		apiKeys: apiKeys,
		model:   model,
		logger:  log,
	}, nil
}
