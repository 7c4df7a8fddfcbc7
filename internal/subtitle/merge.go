package subtitle

import (
	"strings"
	"unicode/utf8"

	"github.com/nguyentantai21042004/cutsheet/pkg/timecode"
)

// MergeShort folds cues shorter than minLength into the next cue that is long enough.
// The merged cue starts at the first buffered cue and ends at the absorbing cue.
// Short cues still buffered at the end are dropped and counted.
// Out of order input never yields a negative duration: the span then starts at the absorbing cue.
func MergeShort(cues []Cue, minLength int) ([]Cue, int) {
	merged := make([]Cue, 0, len(cues))
	var buf []Cue

	for _, c := range cues {
		if utf8.RuneCountInString(c.Text) < minLength {
			buf = append(buf, c)
			continue
		}
		if len(buf) == 0 {
			merged = append(merged, c)
			continue
		}

		texts := make([]string, 0, len(buf)+1)
		for _, b := range buf {
			texts = append(texts, b.Text)
		}
		texts = append(texts, c.Text)

		start := buf[0].Start
		if start.Seconds > c.End.Seconds {
			start = c.Start
		}
		merged = append(merged, Cue{
			Start:    start,
			End:      c.End,
			Text:     strings.Join(texts, " "),
			Duration: timecode.Between(start, c.End),
		})
		buf = buf[:0]
	}

	return merged, len(buf)
}
