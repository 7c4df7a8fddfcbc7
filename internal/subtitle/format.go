package subtitle

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/cutsheet/pkg/timecode"
)

// Stats counts cues and sums their durations.
func Stats(cues []Cue) Statistics {
	var total float64
	for _, c := range cues {
		total += c.Duration
	}
	return Statistics{
		CueCount:      len(cues),
		TotalDuration: timecode.Round(total),
	}
}

// FormatForPrompt renders one "<start> - <end>: <text>" line per cue.
func FormatForPrompt(cues []Cue) string {
	lines := make([]string, 0, len(cues))
	for _, c := range cues {
		lines = append(lines, fmt.Sprintf("%s - %s: %s", c.Start, c.End, c.Text))
	}
	return strings.Join(lines, "\n")
}
