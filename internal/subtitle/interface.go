package subtitle

import "context"

// Parser turns raw subtitle bytes into an ordered cue sequence.
type Parser interface {
	Parse(ctx context.Context, data []byte, filename string, opts ...Option) (Document, error)
}
