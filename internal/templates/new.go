package templates

import (
	"context"
	"sync"

	"github.com/nguyentantai21042004/cutsheet/internal/logger"
)

type implProvider struct {
	dir    string
	logger logger.Logger

	mu        sync.RWMutex
	templates map[string]string
}

// New creates a Provider seeded with the built-in default and loads dir when it is set.
func New(dir string, log logger.Logger) (Provider, error) {
	p := &implProvider{
		dir:       dir,
		logger:    log,
		templates: map[string]string{DefaultName: DefaultTemplate},
	}
	if dir == "" {
		return p, nil
	}
	if err := p.Load(dir); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *implProvider) Reload() error {
	if p.dir == "" {
		return nil
	}
	p.logger.Info(context.Background(), "Reloading templates from %s", p.dir)
	return p.Load(p.dir)
}
