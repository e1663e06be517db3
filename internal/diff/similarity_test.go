package diff

import "testing"

func TestSimilarityBounds(t *testing.T) {
	cases := []struct {
		a, b string
	}{
		{"", ""},
		{"x", ""},
		{"", "x"},
		{"abc", "abc"},
		{"abc", "xyz"},
		{"Hello {{name}}", "Hello {{full_name}}"},
		{"héllo", "hëllo"},
	}
	for _, tc := range cases {
		got := Similarity(tc.a, tc.b)
		if got < 0.0 || got > 1.0 {
			t.Fatalf("Similarity(%q, %q) = %f out of bounds", tc.a, tc.b, got)
		}
	}
}

func TestSimilarityIdentical(t *testing.T) {
	for _, s := range []string{"", "a", "some longer text with {{vars}}"} {
		if got := Similarity(s, s); got != 1.0 {
			t.Fatalf("Similarity(%q, %q) = %f, want 1.0", s, s, got)
		}
	}
}

func TestSimilarityEmptySides(t *testing.T) {
	if got := Similarity("", ""); got != 1.0 {
		t.Fatalf("both empty: got %f", got)
	}
	if got := Similarity("x", ""); got != 0.0 {
		t.Fatalf("one empty: got %f", got)
	}
	if got := Similarity("", "x"); got != 0.0 {
		t.Fatalf("one empty: got %f", got)
	}
}

func TestSimilarityBlockRatio(t *testing.T) {
	// "abcd" vs "bcde" share the block "bcd": 2*3/8.
	if got := Similarity("abcd", "bcde"); got != 0.75 {
		t.Fatalf("Similarity(abcd, bcde) = %f, want 0.75", got)
	}
}

func TestSimilarityCloseEdit(t *testing.T) {
	got := Similarity("Hello {{name}}", "Hello {{full_name}}")
	if got <= 0.5 || got >= 1.0 {
		t.Fatalf("expected a high but non-exact ratio, got %f", got)
	}
}
