package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/cutsheet/pkg/timecode"
)

// ProcessFile processes a subtitle dropped into the inbox, writes <name>.md and
// <name>.docx into the output folder and moves the source to the archived folder.
func (p *implProcessor) ProcessFile(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if limit := p.cfg.Limits.MaxFileSize; limit > 0 && info.Size() > limit {
		return fmt.Errorf("%w: %s is %d bytes, limit %d", ErrFileTooLarge, path, info.Size(), limit)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	filename := filepath.Base(path)
	res, err := p.Process(ctx, Input{Filename: filename, Data: data})
	if err != nil {
		return fmt.Errorf("process %s: %w", filename, err)
	}

	if err := p.writeOutputs(ctx, res); err != nil {
		return err
	}

	if err := p.moveToArchived(ctx, path); err != nil {
		p.logger.Warn(ctx, "Failed to move %s to archived folder: %v", path, err)
	}
	return nil
}

func (p *implProcessor) writeOutputs(ctx context.Context, res Result) error {
	if err := os.MkdirAll(p.cfg.Paths.Output, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	name := strings.TrimSuffix(res.Filename, filepath.Ext(res.Filename))
	title := fmt.Sprintf("%s (%s)", name, timecode.Format(res.Stats.TotalDuration, ","))

	md := fmt.Sprintf("# %s\n\n_%s, %d cues, template %s_\n\n%s\n",
		title,
		time.Now().Format("2006-01-02 15:04"),
		res.Stats.CueCount,
		res.Template,
		strings.TrimSpace(res.EditList),
	)
	mdPath := filepath.Join(p.cfg.Paths.Output, name+".md")
	if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
		return fmt.Errorf("write %s: %w", mdPath, err)
	}

	docxPath := filepath.Join(p.cfg.Paths.Output, name+".docx")
	if err := markdownToDocx(title, res.EditList, docxPath); err != nil {
		// the markdown copy is already on disk
		p.logger.Warn(ctx, "Failed to write %s: %v", docxPath, err)
	}

	p.logger.Info(ctx, "[DONE] %s -> %s", res.Filename, mdPath)
	return nil
}

// moveToArchived moves the processed subtitle out of the inbox
func (p *implProcessor) moveToArchived(ctx context.Context, path string) error {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}
	dest := filepath.Join(p.cfg.Paths.Archived, filepath.Base(path))

	p.logger.Info(ctx, "Moving to archived folder: %s -> %s", path, dest)

	if err := os.Rename(path, dest); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}
	return nil
}
