package watcher

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/cutsheet/internal/logger"
)

// Options selects which events reach the handler.
type Options struct {
	// Extensions filters by file extension (case-insensitive). Empty accepts every file.
	Extensions []string
	// Ops is the event mask. Zero means fsnotify.Create.
	Ops fsnotify.Op
	// MaxConcurrent bounds handler goroutines.
	MaxConcurrent int
	// SettleDelay waits before handling so writers can finish.
	SettleDelay time.Duration
}

// New creates a new Watcher instance with concurrency control
func New(dir string, handler EventHandler, log logger.Logger, opts Options) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	// Default to 2 concurrent if not specified
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 2
	}
	if opts.Ops == 0 {
		opts.Ops = fsnotify.Create
	}

	exts := make(map[string]bool, len(opts.Extensions))
	for _, e := range opts.Extensions {
		exts[strings.ToLower(e)] = true
	}

	return &implWatcher{
		dir:           dir,
		handler:       handler,
		logger:        log,
		watcher:       watcher,
		ops:           opts.Ops,
		extensions:    exts,
		settleDelay:   opts.SettleDelay,
		maxConcurrent: opts.MaxConcurrent,
		semaphore:     make(chan struct{}, opts.MaxConcurrent),
	}, nil
}
