package subtitle

import (
	"github.com/nguyentantai21042004/cutsheet/pkg/timecode"
)

// MinCueLength is the text length (in characters) below which a cue is merged into the next one.
const MinCueLength = 15

// Format is a supported subtitle container.
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
)

// Cue is one timed subtitle entry. Duration is always End - Start in seconds.
type Cue struct {
	Start    timecode.Timecode
	End      timecode.Timecode
	Text     string
	Duration float64
}

// Document is the outcome of parsing one file.
type Document struct {
	Format   Format
	Encoding string
	Cues     []Cue
	// Skipped counts blocks that did not have the expected cue shape.
	Skipped int
	// Dropped counts short cues left in the merge buffer at end of input.
	Dropped int
}

// Statistics summarises a cue sequence.
type Statistics struct {
	CueCount      int     `json:"cue_count"`
	TotalDuration float64 `json:"total_duration"`
}

// Stats returns the statistics of the document's cues.
func (d Document) Stats() Statistics {
	return Stats(d.Cues)
}
