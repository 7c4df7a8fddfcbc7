package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/cutsheet/internal/analyzer"
	"github.com/nguyentantai21042004/cutsheet/internal/history"
	"github.com/nguyentantai21042004/cutsheet/internal/logger"
	"github.com/nguyentantai21042004/cutsheet/internal/subtitle"
)

// Process runs parse -> format -> analyze for one subtitle file.
// Parse errors are returned as is. Analysis failures return the partial Result with
// Message set and an *analyzer.Error.
func (p *implProcessor) Process(ctx context.Context, in Input) (Result, error) {
	startTime := time.Now()

	requestID := logger.RequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
		ctx = logger.WithRequestID(ctx, requestID)
	}

	templateName := in.Template
	if templateName == "" {
		templateName = p.cfg.Analysis.Template
	}

	res := Result{
		RequestID: requestID,
		Filename:  in.Filename,
		Template:  templateName,
	}

	p.logger.Info(ctx, "Processing subtitle: %s (%d bytes, template %s)", in.Filename, len(in.Data), templateName)

	doc, err := p.Inspect(ctx, in)
	if err != nil {
		p.record(ctx, res, err)
		return res, err
	}
	res.Document = doc
	res.Stats = doc.Stats()

	cueText := subtitle.FormatForPrompt(doc.Cues)
	tpl := p.templates.Get(templateName)

	if err := p.sem.Acquire(ctx, 1); err != nil {
		aerr := &analyzer.Error{Kind: analyzer.KindCanceled, Err: err}
		res.Message = analyzer.Message(aerr)
		p.record(ctx, res, aerr)
		return res, aerr
	}
	editList, err := p.analyzer.Analyze(ctx, cueText, tpl)
	p.sem.Release(1)

	if err != nil {
		res.Message = analyzer.Message(err)
		p.logger.Error(ctx, "Analysis of %s failed: %v", in.Filename, err)
		p.record(ctx, res, err)
		return res, err
	}
	res.EditList = editList

	p.record(ctx, res, nil)
	p.logger.Info(ctx, "Edit list ready for %s: %d cues, %.3fs, took %s",
		in.Filename, res.Stats.CueCount, res.Stats.TotalDuration, time.Since(startTime))
	return res, nil
}

// Inspect enforces the size limit and parses the input.
func (p *implProcessor) Inspect(ctx context.Context, in Input) (subtitle.Document, error) {
	if limit := p.cfg.Limits.MaxFileSize; limit > 0 && int64(len(in.Data)) > limit {
		return subtitle.Document{}, fmt.Errorf("%w: %d bytes, limit %d", ErrFileTooLarge, len(in.Data), limit)
	}

	var opts []subtitle.Option
	if in.Encoding != "" {
		opts = append(opts, subtitle.WithEncoding(in.Encoding))
	}

	doc, err := p.parser.Parse(ctx, in.Data, in.Filename, opts...)
	if err != nil {
		return subtitle.Document{}, fmt.Errorf("parse %s: %w", in.Filename, err)
	}
	if doc.Skipped > 0 || doc.Dropped > 0 {
		p.logger.Warn(ctx, "%s: %d malformed blocks skipped, %d trailing short cues dropped", in.Filename, doc.Skipped, doc.Dropped)
	}
	return doc, nil
}

// record stores the outcome in the history store; failures are only logged.
// The write outlives the request context so canceled requests are recorded too.
func (p *implProcessor) record(ctx context.Context, res Result, err error) {
	if p.history == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)

	rec := &history.Record{
		RequestID:     res.RequestID,
		Filename:      res.Filename,
		Format:        string(res.Document.Format),
		Encoding:      res.Document.Encoding,
		CueCount:      res.Stats.CueCount,
		Skipped:       res.Document.Skipped,
		Dropped:       res.Document.Dropped,
		TotalDuration: res.Stats.TotalDuration,
		Template:      res.Template,
		Status:        history.StatusSucceeded,
	}
	if err != nil {
		rec.Status = history.StatusFailed
		rec.ErrorKind = errorKind(err)
	}

	if err := p.history.Add(ctx, rec); err != nil {
		p.logger.Warn(ctx, "Failed to record history for %s: %v", res.Filename, err)
	}
}
