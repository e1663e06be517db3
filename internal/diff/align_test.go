package diff

import (
	"testing"

	"github.com/promptops/promptdiff/internal/prompt"
)

func textElement(content string, line int) prompt.Element {
	return prompt.Element{
		Kind:      prompt.KindText,
		Content:   content,
		LineStart: line,
		LineEnd:   line,
		Raw:       content,
	}
}

func TestAlignExactFirstFit(t *testing.T) {
	old := []prompt.Element{textElement("dup", 0), textElement("dup", 2)}
	new := []prompt.Element{textElement("dup", 0), textElement("dup", 2)}
	pairs := Align(old, new)
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}
	// Identical duplicates pair off positionally.
	if pairs[0].Old.LineStart != 0 || pairs[0].New.LineStart != 0 {
		t.Fatalf("unexpected first pair: %+v", pairs[0])
	}
	if pairs[1].Old.LineStart != 2 || pairs[1].New.LineStart != 2 {
		t.Fatalf("unexpected second pair: %+v", pairs[1])
	}
}

func TestAlignFuzzyAboveThreshold(t *testing.T) {
	old := []prompt.Element{textElement("Hello {{name}}", 0)}
	new := []prompt.Element{textElement("Hello {{full_name}}", 0)}
	pairs := Align(old, new)
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d: %+v", len(pairs), pairs)
	}
	if pairs[0].Old == nil || pairs[0].New == nil {
		t.Fatalf("expected a matched pair, got %+v", pairs[0])
	}
}

func TestAlignUnrelatedStayUnmatched(t *testing.T) {
	old := []prompt.Element{textElement("aaaaaaaaaa", 0)}
	new := []prompt.Element{textElement("zzzzzzzzzz", 0)}
	pairs := Align(old, new)
	if len(pairs) != 2 {
		t.Fatalf("expected removal plus addition, got %+v", pairs)
	}
	if pairs[0].New != nil || pairs[1].Old != nil {
		t.Fatalf("expected removal before addition, got %+v", pairs)
	}
}

func TestAlignKindMismatchNeverMatches(t *testing.T) {
	old := []prompt.Element{{Kind: prompt.KindInstruction, Content: "same", LineStart: 0}}
	new := []prompt.Element{{Kind: prompt.KindText, Content: "same", LineStart: 0}}
	pairs := Align(old, new)
	if len(pairs) != 2 {
		t.Fatalf("kinds must match to align, got %+v", pairs)
	}
}

func TestAlignWhitespaceExcluded(t *testing.T) {
	old := []prompt.Element{{Kind: prompt.KindWhitespace, LineStart: 0}}
	new := []prompt.Element{{Kind: prompt.KindWhitespace, LineStart: 0}}
	if pairs := Align(old, new); len(pairs) != 0 {
		t.Fatalf("whitespace must not be aligned, got %+v", pairs)
	}
}

func TestAlignTotality(t *testing.T) {
	old := []prompt.Element{
		textElement("kept as is", 0),
		textElement("edited slightly here", 2),
		textElement("gone entirely zzz", 4),
	}
	new := []prompt.Element{
		textElement("kept as is", 0),
		textElement("edited slightly there", 2),
		textElement("brand new content abc", 4),
	}
	pairs := Align(old, new)
	oldSeen, newSeen := 0, 0
	for _, p := range pairs {
		if p.Old != nil {
			oldSeen++
		}
		if p.New != nil {
			newSeen++
		}
	}
	if oldSeen != len(old) || newSeen != len(new) {
		t.Fatalf("every element must appear exactly once: old %d/%d new %d/%d",
			oldSeen, len(old), newSeen, len(new))
	}
}
