package subtitle

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nguyentantai21042004/cutsheet/pkg/timecode"
)

var (
	reBlankLines = regexp.MustCompile(`\n\s*\n`)
	reMarkup     = regexp.MustCompile(`<.*?>`)
)

// vtt blocks that carry no cue
var vttHeaders = []string{"WEBVTT", "NOTE", "STYLE", "REGION"}

// DetectFormat maps a filename to a subtitle format by extension only.
func DetectFormat(filename string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".srt":
		return FormatSRT, nil
	case ".vtt":
		return FormatVTT, nil
	default:
		return "", &UnsupportedFormatError{Filename: filename, Ext: ext}
	}
}

// Parse decodes data, splits it into cue blocks and merges short fragments.
func (p *implParser) Parse(ctx context.Context, data []byte, filename string, opts ...Option) (Document, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return Document{}, err
	}

	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}

	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	enc := o.encoding
	if enc == "" {
		enc = p.detectEncoding(data)
	}
	content, err := decode(data, enc)
	if err != nil {
		return Document{}, err
	}

	var cues []Cue
	var skipped int
	switch format {
	case FormatSRT:
		cues, skipped = parseBlocks(content, decodeSRTBlock)
	case FormatVTT:
		cues, skipped = parseBlocks(content, decodeVTTBlock)
	}

	merged, dropped := MergeShort(cues, p.minLength)

	doc := Document{
		Format:   format,
		Encoding: enc,
		Cues:     merged,
		Skipped:  skipped,
		Dropped:  dropped,
	}

	p.logger.Debug(ctx, "Parsed %s (%s, %s): %d blocks decoded, %d skipped, %d cues after merge, %d dropped",
		filename, format, enc, len(cues), skipped, len(merged), dropped)

	return doc, nil
}

// blockDecoder returns ok=false for blocks that do not have a cue shape.
// header=true marks blocks that are legitimate non-cue content.
type blockDecoder func(lines []string) (cue Cue, ok bool, header bool)

func parseBlocks(content string, decodeBlock blockDecoder) ([]Cue, int) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, 0
	}

	var cues []Cue
	skipped := 0
	for _, block := range reBlankLines.Split(content, -1) {
		cue, ok, header := decodeBlock(strings.Split(block, "\n"))
		if header {
			continue
		}
		if !ok {
			skipped++
			continue
		}
		cues = append(cues, cue)
	}
	return cues, skipped
}

// decodeSRTBlock expects: index, timing line, one or more text lines.
func decodeSRTBlock(lines []string) (Cue, bool, bool) {
	if len(lines) < 3 {
		return Cue{}, false, false
	}
	cue, err := newCue(lines[1], lines[2:])
	if err != nil {
		return Cue{}, false, false
	}
	return cue, true, false
}

// decodeVTTBlock expects the timing line first, then text lines.
func decodeVTTBlock(lines []string) (Cue, bool, bool) {
	first := strings.TrimSpace(lines[0])
	for _, h := range vttHeaders {
		if first == h || strings.HasPrefix(first, h+" ") || strings.HasPrefix(first, h+"\t") {
			return Cue{}, false, true
		}
	}
	if len(lines) < 2 || !strings.Contains(lines[0], "-->") {
		return Cue{}, false, false
	}
	cue, err := newCue(lines[0], lines[1:])
	if err != nil {
		return Cue{}, false, false
	}
	return cue, true, false
}

func newCue(timing string, text []string) (Cue, error) {
	startRaw, endRaw, ok := strings.Cut(timing, "-->")
	if !ok {
		return Cue{}, fmt.Errorf("missing --> in %q", timing)
	}
	// drop WebVTT cue settings such as "align:start"
	if fields := strings.Fields(endRaw); len(fields) > 0 {
		endRaw = fields[0]
	}

	start, err := timecode.Parse(startRaw)
	if err != nil {
		return Cue{}, fmt.Errorf("start: %w", err)
	}
	end, err := timecode.Parse(endRaw)
	if err != nil {
		return Cue{}, fmt.Errorf("end: %w", err)
	}
	if end.Seconds < start.Seconds {
		return Cue{}, fmt.Errorf("end %s before start %s", end.Raw, start.Raw)
	}

	return Cue{
		Start:    start,
		End:      end,
		Text:     CleanText(strings.Join(text, " ")),
		Duration: timecode.Between(start, end),
	}, nil
}

// CleanText strips markup tags, turns newlines into spaces and trims.
func CleanText(s string) string {
	s = reMarkup.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
