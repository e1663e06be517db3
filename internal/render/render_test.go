package render

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/promptops/promptdiff/internal/diff"
	"github.com/promptops/promptdiff/internal/prompt"
)

func init() {
	color.NoColor = true
}

func TestSemanticOutput(t *testing.T) {
	result := diff.Compare("Hello {{name}}", "old.txt", "Hello {{full_name}}", "new.txt")
	var b strings.Builder
	Semantic(&b, result, false)
	out := b.String()

	for _, want := range []string{
		"- old.txt", "+ new.txt",
		"{{full_name}}", "{{name}}",
		"~ text",
		"Summary: +0 -0 ~1",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestSemanticHidesUnchangedByDefault(t *testing.T) {
	result := diff.Compare("same here", "a", "same here", "b")
	var b strings.Builder
	Semantic(&b, result, false)
	if strings.Contains(b.String(), "same here") {
		t.Fatalf("unchanged content should be hidden:\n%s", b.String())
	}
}

func TestElementsSkipsWhitespace(t *testing.T) {
	elements := prompt.Segment("line one\n\nline two")
	var b strings.Builder
	Elements(&b, "x.txt", elements)
	if strings.Contains(b.String(), "whitespace") {
		t.Fatalf("whitespace rows must be skipped:\n%s", b.String())
	}
}

func TestResultJSONContract(t *testing.T) {
	result := diff.Compare("Hello {{name}}", "a", "Hello {{full_name}}", "b")
	data, err := ResultJSON(result, false)
	if err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		ElementDiffs []struct {
			ChangeKind  string `json:"change_kind"`
			ElementKind string `json:"element_kind"`
			Details     *struct {
				Similarity float64 `json:"similarity"`
			} `json:"details"`
		} `json:"element_diffs"`
		AddedVariables []string `json:"added_variables"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded.ElementDiffs) != 1 {
		t.Fatalf("expected one diff, got %+v", decoded)
	}
	d := decoded.ElementDiffs[0]
	if d.ChangeKind != "modified" || d.ElementKind != "text" {
		t.Fatalf("contract fields wrong: %+v", d)
	}
	if d.Details == nil || d.Details.Similarity <= 0 || d.Details.Similarity >= 1 {
		t.Fatalf("details.similarity missing or out of range: %+v", d)
	}
	if len(decoded.AddedVariables) != 1 || decoded.AddedVariables[0] != "full_name" {
		t.Fatalf("added variables wrong: %+v", decoded.AddedVariables)
	}
}

func TestResultJSONFiltersUnchanged(t *testing.T) {
	result := diff.Compare("same", "a", "same", "b")
	data, err := ResultJSON(result, false)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), `"unchanged"`) {
		t.Fatalf("unchanged diffs should be filtered:\n%s", data)
	}
}

func TestSideBySideColumnAlignment(t *testing.T) {
	color.NoColor = false
	defer func() { color.NoColor = true }()

	rows := []diff.Row{
		{Marker: ' ', Old: "same", New: "same"},
		{Marker: '|', Old: "old", New: "new"},
		{Marker: '<', Old: "gone", New: ""},
	}
	var b strings.Builder
	SideBySide(&b, "a", "b", rows, 21)

	ansi := regexp.MustCompile("\x1b\\[[0-9;]*m")
	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header and 3 rows, got %d lines:\n%s", len(lines), b.String())
	}
	want := strings.Index(ansi.ReplaceAllString(lines[1], ""), "|")
	for _, line := range lines[2:] {
		plain := ansi.ReplaceAllString(line, "")
		if got := strings.LastIndex(plain, "|"); got != want {
			t.Fatalf("separator misaligned, want column %d got %d:\n%q", want, got, line)
		}
	}
}

func TestElementsJSON(t *testing.T) {
	data, err := ElementsJSON(prompt.Segment("system: hi"))
	if err != nil {
		t.Fatal(err)
	}
	var decoded []struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 1 || decoded[0].Kind != "role" {
		t.Fatalf("unexpected elements: %+v", decoded)
	}
}
