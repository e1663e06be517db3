package tokens

import "testing"

func TestEstimateEmpty(t *testing.T) {
	if got := Estimate(""); got != 0 {
		t.Fatalf("empty text should estimate 0 tokens, got %d", got)
	}
}

func TestEstimateSwappable(t *testing.T) {
	old := estimateFunc
	estimateFunc = func(text string) int { return len(text) }
	defer func() { estimateFunc = old }()

	if got := Estimate("abcd"); got != 4 {
		t.Fatalf("expected stubbed estimate 4, got %d", got)
	}
}

func TestHeuristicFloor(t *testing.T) {
	if got := heuristicEstimate("hi"); got != 1 {
		t.Fatalf("short text must estimate at least 1 token, got %d", got)
	}
	if got := heuristicEstimate("12345678"); got != 2 {
		t.Fatalf("expected 2 tokens for 8 chars, got %d", got)
	}
}
