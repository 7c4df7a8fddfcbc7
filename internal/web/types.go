package web

import (
	"github.com/nguyentantai21042004/cutsheet/internal/cache"
	"github.com/nguyentantai21042004/cutsheet/internal/history"
	"github.com/nguyentantai21042004/cutsheet/internal/subtitle"
)

type errorOutput struct {
	RequestID string `json:"request_id,omitempty"`
	Kind      string `json:"kind"`
	Message   string `json:"message"`
}

type documentOutput struct {
	Format   subtitle.Format     `json:"format"`
	Encoding string              `json:"encoding"`
	Stats    subtitle.Statistics `json:"stats"`
	Skipped  int                 `json:"skipped"`
	Dropped  int                 `json:"dropped"`
}

type editListOutput struct {
	RequestID string         `json:"request_id"`
	Filename  string         `json:"filename"`
	Template  string         `json:"template"`
	Document  documentOutput `json:"document"`
	EditList  string         `json:"edit_list"`
}

type templateOutput struct {
	Name    string `json:"name"`
	Content string `json:"content"`
	Valid   bool   `json:"valid"`
}

type templatesOutput struct {
	Templates []string `json:"templates"`
}

type historyOutput struct {
	Records []history.Record `json:"records"`
}

type healthOutput struct {
	Status string      `json:"status"`
	Cache  cache.Stats `json:"cache"`
}

func newDocumentOutput(doc subtitle.Document) documentOutput {
	return documentOutput{
		Format:   doc.Format,
		Encoding: doc.Encoding,
		Stats:    doc.Stats(),
		Skipped:  doc.Skipped,
		Dropped:  doc.Dropped,
	}
}
