package analyzer

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/nguyentantai21042004/cutsheet/internal/llm"
)

const systemPrompt = `You are a professional video editor who prepares edit lists.
Your task is to analyse the subtitles of a video and produce a detailed edit list.

RULES:
1. Analyse the dialogue and identify the key scenes
2. Build a structured edit list with timecodes
3. Describe actions and transitions
4. Follow the format of the provided template
5. Use professional editing terminology

TEMPLATE TO FOLLOW:
{template}

RESPONSE FORMAT:
- Return only the finished edit list
- Do not add comments or explanations
- Keep the structure of the template
`

// cacheKey hashes the cue text and template together.
func cacheKey(cueText, template string) string {
	sum := sha256.Sum256([]byte(cueText + template))
	return hex.EncodeToString(sum[:])
}

func (a *implAnalyzer) buildRequest(cueText, template string) llm.Request {
	return llm.Request{
		System:      strings.Replace(systemPrompt, "{template}", template, 1),
		User:        cueText,
		Temperature: a.opts.Temperature,
		MaxTokens:   a.opts.MaxTokens,
	}
}
