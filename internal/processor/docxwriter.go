package processor

import (
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

var (
	reHeading  = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBullet   = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
	reTimecode = regexp.MustCompile(`^(\d{1,2}:\d{2}:\d{2}(?:[,.]\d{1,3})?(?:\s*-{1,2}>?\s*\d{1,2}:\d{2}:\d{2}(?:[,.]\d{1,3})?)?)(.*)$`)
)

// markdownToDocx renders an edit list (markdown-ish LLM output) to a styled docx file.
// Lines opening with a timecode or a timecode range get the range in the timecode style.
func markdownToDocx(title, markdown, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addRun(doc.AddParagraph(""), title, headingStyle(1))

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || trimmed == "---" {
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			addRun(doc.AddParagraph(""), plainText(m[2]), headingStyle(len(m[1])))
			continue
		}

		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			addInline(doc.AddParagraph(""), "• "+m[1])
			continue
		}

		if m := reTimecode.FindStringSubmatch(trimmed); m != nil {
			p := doc.AddParagraph("")
			addRun(p, m[1], timecodeStyle)
			addInline(p, m[2])
			continue
		}

		addInline(doc.AddParagraph(""), trimmed)
	}

	return doc.SaveTo(outputPath)
}

// edit list styling: scene headings stand out, timecodes read like a log
const (
	textColor     = "000000"
	headingColor  = "1F3864"
	timecodeFont  = "Courier New"
	timecodeColor = "7F1D1D"
)

type runStyle struct {
	font  string
	size  uint64
	color string
	bold  bool
}

var bodyStyle = runStyle{font: fontName, size: fontSize, color: textColor}

func headingStyle(level int) runStyle {
	st := runStyle{font: fontName, color: headingColor, bold: true}
	switch level {
	case 1:
		st.size = 16
	case 2:
		st.size = 15
	case 3:
		st.size = 14
	default:
		st.size = fontSize
		st.color = textColor
	}
	return st
}

var timecodeStyle = runStyle{font: timecodeFont, size: fontSize, color: timecodeColor, bold: true}

func addRun(p *docx.Paragraph, text string, st runStyle) {
	if text == "" {
		return
	}
	run := p.AddText(text).Font(st.font).Size(st.size).Color(st.color)
	if st.bold {
		run.Bold(true)
	}
}

// span is a piece of an inline markdown line.
type span struct {
	text string
	bold bool
	code bool
}

// splitInline breaks a line on **bold** and `code` markers. Unbalanced markers stay as text.
func splitInline(line string) []span {
	var out []span
	for line != "" {
		i := strings.IndexAny(line, "*`")
		if i < 0 {
			out = appendText(out, line)
			break
		}

		marker, code := "**", false
		if line[i] == '`' {
			marker, code = "`", true
		} else if !strings.HasPrefix(line[i:], "**") {
			out = appendText(out, line[:i+1])
			line = line[i+1:]
			continue
		}

		rest := line[i+len(marker):]
		end := strings.Index(rest, marker)
		if end < 0 {
			out = appendText(out, line)
			break
		}
		out = appendText(out, line[:i])
		if rest[:end] != "" {
			out = append(out, span{text: rest[:end], bold: !code, code: code})
		}
		line = rest[end+len(marker):]
	}
	return out
}

func appendText(out []span, text string) []span {
	if text == "" {
		return out
	}
	if n := len(out); n > 0 && !out[n-1].bold && !out[n-1].code {
		out[n-1].text += text
		return out
	}
	return append(out, span{text: text})
}

// addInline renders a line, with code spans styled as timecodes.
func addInline(p *docx.Paragraph, line string) {
	for _, sp := range splitInline(line) {
		switch {
		case sp.code:
			addRun(p, sp.text, timecodeStyle)
		case sp.bold:
			st := bodyStyle
			st.bold = true
			addRun(p, sp.text, st)
		default:
			addRun(p, strings.ReplaceAll(sp.text, "__", ""), bodyStyle)
		}
	}
}

// plainText drops inline markers, for runs that carry a single style.
func plainText(s string) string {
	var b strings.Builder
	for _, sp := range splitInline(s) {
		b.WriteString(sp.text)
	}
	return b.String()
}
