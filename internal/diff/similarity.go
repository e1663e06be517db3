package diff

import "strings"

// Similarity returns a normalized similarity ratio in [0, 1] between
// two strings: 1.0 when both are empty, 0.0 when exactly one is empty,
// otherwise the block-matching ratio over runes. The same function
// scores alignment candidates, the similarity reported on modified
// elements and the whole-document ratio, so all three agree for any
// given pair of inputs.
func Similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	return newMatcher(splitRunes(a), splitRunes(b)).ratio()
}

// splitRunes splits a string into per-rune strings so the sequence
// matcher compares characters, not bytes.
func splitRunes(s string) []string {
	return strings.Split(s, "")
}
