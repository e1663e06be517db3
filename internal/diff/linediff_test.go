package diff

import (
	"fmt"
	"strings"
	"testing"
)

func TestUnifiedFraming(t *testing.T) {
	out := Unified("one\ntwo\nthree\n", "one\nTWO\nthree\n", "old.txt", "new.txt", 3)
	if !strings.HasPrefix(out, "--- old.txt\n+++ new.txt\n") {
		t.Fatalf("missing header framing:\n%s", out)
	}
	if !strings.Contains(out, "@@ -1,3 +1,3 @@") {
		t.Fatalf("missing hunk header:\n%s", out)
	}
	if !strings.Contains(out, "-two\n") || !strings.Contains(out, "+TWO\n") {
		t.Fatalf("missing change lines:\n%s", out)
	}
}

func TestUnifiedIdenticalTexts(t *testing.T) {
	if out := Unified("same\n", "same\n", "a", "b", 3); out != "" {
		t.Fatalf("expected empty diff, got:\n%s", out)
	}
}

func TestUnifiedContextWindow(t *testing.T) {
	var lines []string
	for i := 0; i < 20; i++ {
		lines = append(lines, fmt.Sprintf("ctx %d", i))
	}
	oldText := strings.Join(lines, "\n")
	newLines := append([]string{}, lines...)
	newLines[10] = "changed"
	newText := strings.Join(newLines, "\n")

	out := Unified(oldText, newText, "a", "b", 1)
	if got := strings.Count(out, "@@ -"); got != 1 {
		t.Fatalf("expected a single hunk, got %d:\n%s", got, out)
	}
	if !strings.Contains(out, "@@ -10,3 +10,3 @@") {
		t.Fatalf("missing hunk header:\n%s", out)
	}
	if strings.Count(out, " ctx ") != 2 {
		t.Fatalf("expected exactly 2 context lines with context=1:\n%s", out)
	}
	if !strings.Contains(out, "-ctx 10\n+changed\n") {
		t.Fatalf("missing replace lines:\n%s", out)
	}
}

func TestSideBySideMarkers(t *testing.T) {
	rows := SideBySide("same\nold only\nreplace me\n", "same\nreplace you\nnew only\n", 80)
	var markers []byte
	for _, r := range rows {
		markers = append(markers, r.Marker)
	}
	if markers[0] != ' ' {
		t.Fatalf("expected equal marker first, got %q", markers)
	}
	seen := map[byte]bool{}
	for _, m := range markers {
		seen[m] = true
	}
	if !seen['|'] && !(seen['<'] && seen['>']) {
		t.Fatalf("expected replace or delete+insert markers, got %q", markers)
	}
}

func TestSideBySideReplacePadding(t *testing.T) {
	rows := SideBySide("a\nb\nc\n", "x\n", 80)
	if len(rows) == 0 {
		t.Fatal("expected rows")
	}
	// Three old lines replaced by one new line pad the right column.
	padded := 0
	for _, r := range rows {
		if r.Marker == '|' && r.New == "" {
			padded++
		}
	}
	if padded == 0 {
		t.Fatalf("expected padded replace rows, got %+v", rows)
	}
}

func TestSideBySideTruncation(t *testing.T) {
	long := strings.Repeat("x", 200)
	rows := SideBySide(long+"\n", long+"\n", 21)
	half := (21 - 3) / 2
	if len(rows) != 1 || len(rows[0].Old) != half || len(rows[0].New) != half {
		t.Fatalf("expected both columns truncated to %d, got %+v", half, rows)
	}
}
