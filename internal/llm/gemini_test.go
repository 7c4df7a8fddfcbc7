package llm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nguyentantai21042004/cutsheet/internal/logger"
	"google.golang.org/genai"
)

func TestNewGeminiRequiresKeys(t *testing.T) {
	if _, err := NewGemini(nil, "gemini-2.5-flash", logger.New("error")); err == nil {
		t.Error("NewGemini() without keys should fail")
	}
}

func TestIsRateLimit(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"api error 429", genai.APIError{Code: 429, Message: "slow down"}, true},
		{"wrapped api error", fmt.Errorf("call: %w", genai.APIError{Code: 429}), true},
		{"api error 500", genai.APIError{Code: 500, Message: "boom"}, false},
		{"quota text", errors.New("quota exceeded for project"), true},
		{"resource exhausted", errors.New("rpc error: RESOURCE_EXHAUSTED"), true},
		{"other", errors.New("connection reset"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRateLimit(tt.err); got != tt.want {
				t.Errorf("isRateLimit(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestResponseText(t *testing.T) {
	tests := []struct {
		name   string
		result *genai.GenerateContentResponse
		want   string
	}{
		{"nil", nil, ""},
		{"no candidates", &genai.GenerateContentResponse{}, ""},
		{
			name: "joins parts",
			result: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{
					Content: &genai.Content{Parts: []*genai.Part{{Text: "Scene 1"}, {Text: ", Scene 2"}}},
				}},
			},
			want: "Scene 1, Scene 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := responseText(tt.result); got != tt.want {
				t.Errorf("responseText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRotateKey(t *testing.T) {
	c, err := NewGemini([]string{"a", "b", "c"}, "m", logger.New("error"))
	if err != nil {
		t.Fatal(err)
	}
	g := c.(*implGemini)

	g.rotateKey(0)
	if idx, key := g.key(); idx != 1 || key != "b" {
		t.Errorf("key() = %d %q, want 1 b", idx, key)
	}

	// a stale rotation does not skip a key
	g.rotateKey(0)
	if idx, _ := g.key(); idx != 1 {
		t.Errorf("stale rotate moved to %d", idx)
	}

	g.rotateKey(1)
	g.rotateKey(2)
	if idx, _ := g.key(); idx != 0 {
		t.Errorf("rotation did not wrap, got %d", idx)
	}
}
