package diff

import (
	"reflect"
	"testing"
)

func TestCompareIdenticalTexts(t *testing.T) {
	text := "system: x\nYou must be brief.\n\nHello {{name}}"
	result := Compare(text, "a", text, "b")
	if result.HasChanges() {
		t.Fatalf("identical texts must have no changes: %+v", result.Diffs)
	}
	if result.Similarity != 1.0 {
		t.Fatalf("expected similarity 1.0, got %f", result.Similarity)
	}
	for _, d := range result.Diffs {
		if d.ChangeKind != ChangeUnchanged {
			t.Fatalf("unexpected change: %+v", d)
		}
	}
}

func TestCompareModifiedVariable(t *testing.T) {
	result := Compare("Hello {{name}}", "old", "Hello {{full_name}}", "new")
	if len(result.Diffs) != 1 {
		t.Fatalf("expected one diff, got %+v", result.Diffs)
	}
	d := result.Diffs[0]
	if d.ChangeKind != ChangeModified {
		t.Fatalf("expected modified, got %s", d.ChangeKind)
	}
	if d.Details == nil || d.Details.Similarity <= 0.0 || d.Details.Similarity >= 1.0 {
		t.Fatalf("expected similarity strictly between 0 and 1, got %+v", d.Details)
	}
	if !reflect.DeepEqual(result.AddedVariables, []string{"full_name"}) {
		t.Fatalf("added variables: %v", result.AddedVariables)
	}
	if !reflect.DeepEqual(result.RemovedVariables, []string{"name"}) {
		t.Fatalf("removed variables: %v", result.RemovedVariables)
	}
}

func TestCompareEmptyAgainstRole(t *testing.T) {
	result := Compare("", "old", "system: Hello", "new")
	if len(result.Diffs) != 1 {
		t.Fatalf("expected exactly one diff, got %+v", result.Diffs)
	}
	d := result.Diffs[0]
	if d.ChangeKind != ChangeAdded || d.ElementKind != "role" {
		t.Fatalf("expected one added role diff, got %+v", d)
	}
	if result.Similarity != 0.0 {
		t.Fatalf("expected similarity 0.0, got %f", result.Similarity)
	}
}

func TestCompareVariableDeltaSymmetry(t *testing.T) {
	a := "Hello {{name}} in ${city}"
	b := "Hello {{full_name}}"
	forward := Compare(a, "a", b, "b")
	backward := Compare(b, "b", a, "a")
	if !reflect.DeepEqual(forward.AddedVariables, backward.RemovedVariables) {
		t.Fatalf("added(a,b) %v != removed(b,a) %v",
			forward.AddedVariables, backward.RemovedVariables)
	}
	if !reflect.DeepEqual(forward.RemovedVariables, backward.AddedVariables) {
		t.Fatalf("removed(a,b) %v != added(b,a) %v",
			forward.RemovedVariables, backward.AddedVariables)
	}
}

func TestCompareCountsMatchPairs(t *testing.T) {
	result := Compare(
		"You must be brief.\n\nshared line\n\nremoved tail zzzz",
		"old",
		"You must be concise.\n\nshared line\n\nfresh addition qqqq",
		"new",
	)
	s := result.Summary()
	total := s.Added + s.Removed + s.Modified
	unchanged := 0
	for _, d := range result.Diffs {
		if d.ChangeKind == ChangeUnchanged {
			unchanged++
		}
	}
	if total+unchanged != len(result.Diffs) {
		t.Fatalf("counts %d + unchanged %d != pairs %d", total, unchanged, len(result.Diffs))
	}
	if s.TotalChanges != total {
		t.Fatalf("summary total %d != %d", s.TotalChanges, total)
	}
}

func TestSummaryCarriesVariableDeltas(t *testing.T) {
	result := Compare("Hello {{name}}", "a", "Hello {{full_name}}", "b")
	s := result.Summary()
	if s.Modified != 1 || s.TotalChanges != 1 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if !reflect.DeepEqual(s.AddedVariables, []string{"full_name"}) {
		t.Fatalf("summary added variables: %v", s.AddedVariables)
	}
	if s.Similarity != result.Similarity {
		t.Fatalf("summary similarity %f != result %f", s.Similarity, result.Similarity)
	}
}
