package processor

import (
	"errors"

	"github.com/nguyentantai21042004/cutsheet/internal/analyzer"
	"github.com/nguyentantai21042004/cutsheet/internal/config"
	"github.com/nguyentantai21042004/cutsheet/internal/history"
	"github.com/nguyentantai21042004/cutsheet/internal/logger"
	"github.com/nguyentantai21042004/cutsheet/internal/subtitle"
	"github.com/nguyentantai21042004/cutsheet/internal/templates"
	"golang.org/x/sync/semaphore"
)

// ErrFileTooLarge is returned for inputs above limits.max_file_size.
var ErrFileTooLarge = errors.New("subtitle file too large")

type implProcessor struct {
	cfg       *config.Config
	parser    subtitle.Parser
	templates templates.Provider
	analyzer  analyzer.Analyzer
	history   history.Store
	logger    logger.Logger
	sem       *semaphore.Weighted
}

// New creates a new Processor instance. store may be nil to skip history records.
func New(cfg *config.Config, parser subtitle.Parser, tpl templates.Provider, an analyzer.Analyzer, store history.Store, log logger.Logger) Processor {
	maxConcurrent := cfg.Performance.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}
	return &implProcessor{
		cfg:       cfg,
		parser:    parser,
		templates: tpl,
		analyzer:  an,
		history:   store,
		logger:    log,
		sem:       semaphore.NewWeighted(int64(maxConcurrent)),
	}
}
