package processor

import (
	"context"

	"github.com/nguyentantai21042004/cutsheet/internal/subtitle"
)

// Processor turns subtitle files into edit lists.
type Processor interface {
	// Process parses the input and asks the analyzer for an edit list.
	Process(ctx context.Context, in Input) (Result, error)
	// Inspect parses the input and returns the document without calling the analyzer.
	Inspect(ctx context.Context, in Input) (subtitle.Document, error)
	// ProcessFile handles a file dropped into the inbox and writes the outputs next to it.
	ProcessFile(ctx context.Context, path string) error
}

// Input is one subtitle file to process.
type Input struct {
	Filename string
	Data     []byte
	// Template names the edit list template; empty means the configured default.
	Template string
	// Encoding overrides charset detection when set.
	Encoding string
}

// Result is the outcome of Process.
type Result struct {
	RequestID string
	Filename  string
	Template  string
	Document  subtitle.Document
	Stats     subtitle.Statistics
	EditList  string
	// Message is the user-facing text when the analysis failed.
	Message string
}
