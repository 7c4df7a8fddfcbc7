package subtitle

import (
	"github.com/nguyentantai21042004/cutsheet/internal/logger"
)

type implParser struct {
	logger    logger.Logger
	detector  detector
	minLength int
}

// New creates a Parser that detects encodings statistically.
func New(log logger.Logger) Parser {
	return &implParser{
		logger:    log,
		detector:  chardetDetector{},
		minLength: MinCueLength,
	}
}

// Option tunes a single Parse call.
type Option func(*parseOptions)

type parseOptions struct {
	encoding string
}

// WithEncoding skips detection and decodes the content with the named charset.
func WithEncoding(name string) Option {
	return func(o *parseOptions) {
		o.encoding = name
	}
}
