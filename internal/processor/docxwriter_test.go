package processor

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSplitInline(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []span
	}{
		{"plain", "wide shot", []span{{text: "wide shot"}}},
		{"bold", "**Intro** workshop", []span{{text: "Intro", bold: true}, {text: " workshop"}}},
		{"code", "cut at `00:01:02,000` here", []span{{text: "cut at "}, {text: "00:01:02,000", code: true}, {text: " here"}}},
		{"single star", "a*b", []span{{text: "a*b"}}},
		{"unbalanced", "**open", []span{{text: "**open"}}},
		{"empty markers", "****x", []span{{text: "x"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitInline(tt.line); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitInline(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestPlainText(t *testing.T) {
	if got := plainText("Scene **1** `intro`"); got != "Scene 1 intro" {
		t.Errorf("plainText() = %q", got)
	}
}

func TestMarkdownToDocx(t *testing.T) {
	out := filepath.Join(t.TempDir(), "edit.docx")
	md := "# Edit list\n## Scene 1\n00:00:01,000 - 00:00:04,000 **Intro** welcome\n- `00:00:02,000` wide shot\n---\nclosing note"

	if err := markdownToDocx("talk (00:00:04,000)", md, out); err != nil {
		t.Fatalf("markdownToDocx() error = %v", err)
	}
	info, err := os.Stat(out)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("empty docx")
	}
}
