package templates

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const templateExt = ".txt"

func (p *implProvider) Get(name string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if t, ok := p.templates[name]; ok {
		return t
	}
	// unknown names always get the built-in, even when default.txt replaced "default"
	return DefaultTemplate
}

func (p *implProvider) Load(dir string) error {
	ctx := context.Background()

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			p.logger.Warn(ctx, "Template directory %s does not exist, using built-in templates", dir)
			return nil
		}
		return fmt.Errorf("read template dir: %w", err)
	}

	loaded := make(map[string]string)
	var errs []error
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || filepath.Ext(e.Name()) != templateExt {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			errs = append(errs, fmt.Errorf("read template %s: %w", e.Name(), err))
			continue
		}
		name := strings.TrimSuffix(e.Name(), templateExt)
		content := string(data)
		if !p.Validate(content) {
			p.logger.Warn(ctx, "Template %s has no %s placeholder", name, ScenesPlaceholder)
		}
		loaded[name] = content
	}

	p.mu.Lock()
	for name, content := range loaded {
		p.templates[name] = content
	}
	p.mu.Unlock()

	p.logger.Info(ctx, "Loaded %d templates from %s", len(loaded), dir)
	return errors.Join(errs...)
}

func (p *implProvider) List() []string {
	p.mu.RLock()
	names := make([]string, 0, len(p.templates))
	for name := range p.templates {
		names = append(names, name)
	}
	p.mu.RUnlock()

	sort.Strings(names)
	return names
}

func (p *implProvider) Validate(content string) bool {
	return strings.Contains(content, ScenesPlaceholder)
}
