package explain

import (
	"context"
	"strings"
	"testing"

	"github.com/promptops/promptdiff/internal/diff"
)

func TestExplainDisabledIsNoop(t *testing.T) {
	e, err := New(Config{Enabled: false})
	if err != nil {
		t.Fatal(err)
	}
	result := diff.Compare("Hello {{name}}", "a", "Hello {{full_name}}", "b")
	summary, err := e.Explain(context.Background(), result)
	if err != nil {
		t.Fatal(err)
	}
	if summary != "" {
		t.Fatalf("disabled explainer must return empty summary, got %q", summary)
	}
}

func TestNewRequiresModelWhenEnabled(t *testing.T) {
	if _, err := New(Config{Enabled: true}); err == nil {
		t.Fatal("expected error for missing model name")
	}
}

func TestRenderChangesOmitsUnchanged(t *testing.T) {
	result := diff.Compare(
		"shared line\n\nYou must be brief.",
		"old", "shared line\n\nYou must be concise.", "new")
	rendered := renderChanges(result)
	if strings.Contains(rendered, "shared line") {
		t.Fatalf("unchanged content must not be rendered:\n%s", rendered)
	}
	if !strings.Contains(rendered, "~ modified instruction") {
		t.Fatalf("modified instruction missing:\n%s", rendered)
	}
}

func TestRenderChangesListsVariableDeltas(t *testing.T) {
	result := diff.Compare("Hello {{name}}", "a", "Hello {{full_name}}", "b")
	rendered := renderChanges(result)
	if !strings.Contains(rendered, "variables added: full_name") {
		t.Fatalf("added variables missing:\n%s", rendered)
	}
	if !strings.Contains(rendered, "variables removed: name") {
		t.Fatalf("removed variables missing:\n%s", rendered)
	}
}

func TestClipLongContent(t *testing.T) {
	long := strings.Repeat("line\n", 10)
	clipped := clip(strings.TrimSuffix(long, "\n"))
	if !strings.Contains(clipped, "more lines") {
		t.Fatalf("expected clipped marker, got %q", clipped)
	}
}
