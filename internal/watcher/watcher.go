package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/cutsheet/internal/logger"
)

type implWatcher struct {
	dir           string
	handler       EventHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	ops           fsnotify.Op
	extensions    map[string]bool
	settleDelay   time.Duration
	maxConcurrent int
	semaphore     chan struct{}
	wg            sync.WaitGroup
}

// Start monitors the directory until ctx is canceled, then waits for running handlers.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.dir)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing handlers in %s to complete...", w.dir)
			w.wg.Wait()
			w.logger.Info(ctx, "File watcher stopped: %s", w.dir)
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if event.Op&w.ops == 0 {
				continue
			}
			if !w.accepts(event.Name) {
				w.logger.Debug(ctx, "Ignoring file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "File event %s: %s", event.Op, event.Name)

			// Acquire semaphore slot (blocks if max concurrent reached)
			select {
			case w.semaphore <- struct{}{}:
				w.wg.Add(1)
				go func(filePath string) {
					defer w.wg.Done()
					defer func() { <-w.semaphore }() // Release semaphore

					// Small delay to ensure file is fully written
					if w.settleDelay > 0 {
						select {
						case <-time.After(w.settleDelay):
						case <-ctx.Done():
							return
						}
					}

					if err := w.handler(ctx, filePath); err != nil {
						w.logger.Error(ctx, "Failed to handle %s: %v", filePath, err)
					}
				}(event.Name)
			case <-ctx.Done():
				w.wg.Wait()
				return ctx.Err()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// accepts checks the file against the extension filter
func (w *implWatcher) accepts(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	if len(w.extensions) == 0 {
		return true
	}
	return w.extensions[strings.ToLower(filepath.Ext(path))]
}
