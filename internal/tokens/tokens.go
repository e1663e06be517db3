// Package tokens estimates LLM token counts for prompt text.
package tokens

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const approxCharsPerToken = 4

var (
	encoderOnce sync.Once
	encoder     *tiktoken.Tiktoken

	// estimateFunc is swappable in tests to avoid loading BPE data.
	estimateFunc = defaultEstimate
)

// Estimate returns the approximate number of tokens in text. It uses a
// tiktoken encoding when one is available and falls back to a character
// heuristic otherwise.
func Estimate(text string) int {
	return estimateFunc(text)
}

func defaultEstimate(text string) int {
	if text == "" {
		return 0
	}
	if enc := getEncoder(); enc != nil {
		if toks := enc.Encode(text, nil, nil); len(toks) > 0 {
			return len(toks)
		}
	}
	return heuristicEstimate(text)
}

func heuristicEstimate(text string) int {
	n := len(text) / approxCharsPerToken
	if n < 1 {
		return 1
	}
	return n
}

func getEncoder() *tiktoken.Tiktoken {
	encoderOnce.Do(func() {
		enc, err := tiktoken.EncodingForModel("gpt-4o-mini")
		if err != nil {
			enc, _ = tiktoken.GetEncoding("cl100k_base")
		}
		encoder = enc
	})
	return encoder
}
