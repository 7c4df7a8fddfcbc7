package history

import "context"

// Store keeps a record of every processed subtitle file.
type Store interface {
	Add(ctx context.Context, rec *Record) error
	List(ctx context.Context, limit int) ([]Record, error)
	Close() error
}
