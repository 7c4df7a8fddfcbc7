package watcher

import "context"

// Watcher runs a handler for matching file events in one directory.
type Watcher interface {
	// Start blocks until ctx is canceled and in-flight handlers return.
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler receives the path of a file that matched the watcher's filters.
type EventHandler func(ctx context.Context, path string) error
