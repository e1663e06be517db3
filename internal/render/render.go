// Package render writes segmentation and diff results as colored
// terminal text or JSON. It consumes the core types without modifying
// them; all decisions about what a change means happen upstream.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/promptops/promptdiff/internal/diff"
	"github.com/promptops/promptdiff/internal/prompt"
)

var (
	addedColor    = color.New(color.FgGreen)
	removedColor  = color.New(color.FgRed)
	modifiedColor = color.New(color.FgYellow)
	dimColor      = color.New(color.Faint)
	headerColor   = color.New(color.Bold)
	variableColor = color.New(color.FgCyan)
	roleColor     = color.New(color.FgMagenta)
)

func kindColor(kind prompt.ElementKind) *color.Color {
	switch kind {
	case prompt.KindInstruction:
		return modifiedColor
	case prompt.KindExample:
		return addedColor
	case prompt.KindRole:
		return roleColor
	case prompt.KindVariable:
		return variableColor
	case prompt.KindComment, prompt.KindWhitespace:
		return dimColor
	default:
		return color.New(color.FgWhite)
	}
}

func changeMarker(kind diff.ChangeKind) (string, *color.Color) {
	switch kind {
	case diff.ChangeAdded:
		return "+", addedColor
	case diff.ChangeRemoved:
		return "-", removedColor
	case diff.ChangeModified:
		return "~", modifiedColor
	default:
		return " ", dimColor
	}
}

const previewLines = 5

// Semantic writes the element-level diff in the default human format.
func Semantic(w io.Writer, result diff.Result, showUnchanged bool) {
	headerColor.Fprintln(w, "Comparing:")
	removedColor.Fprintf(w, "  - %s\n", result.OldLabel)
	addedColor.Fprintf(w, "  + %s\n", result.NewLabel)
	fmt.Fprintf(w, "Similarity: %.1f%%\n", result.Similarity*100)

	if len(result.AddedVariables) > 0 || len(result.RemovedVariables) > 0 {
		headerColor.Fprintln(w, "\nVariable changes:")
		for _, name := range result.AddedVariables {
			fmt.Fprintf(w, "  %s %s\n", addedColor.Sprint("+"), variableColor.Sprintf("{{%s}}", name))
		}
		for _, name := range result.RemovedVariables {
			fmt.Fprintf(w, "  %s %s\n", removedColor.Sprint("-"), variableColor.Sprintf("{{%s}}", name))
		}
	}

	headerColor.Fprintln(w, "\nChanges:")
	for _, d := range result.Diffs {
		if d.ChangeKind == diff.ChangeUnchanged && !showUnchanged {
			continue
		}
		writeDiff(w, d)
	}

	s := result.Summary()
	fmt.Fprintf(w, "\n%s %s %s %s\n",
		headerColor.Sprint("Summary:"),
		addedColor.Sprintf("+%d", s.Added),
		removedColor.Sprintf("-%d", s.Removed),
		modifiedColor.Sprintf("~%d", s.Modified))
}

func writeDiff(w io.Writer, d diff.ElementDiff) {
	marker, markerColor := changeMarker(d.ChangeKind)
	label := kindColor(d.ElementKind).Sprint(string(d.ElementKind))

	switch d.ChangeKind {
	case diff.ChangeAdded:
		fmt.Fprintf(w, "\n%s %s (line %d)\n", markerColor.Sprint(marker), label, deref(d.NewLine)+1)
		preview(w, deref(d.NewContent), addedColor)
	case diff.ChangeRemoved:
		fmt.Fprintf(w, "\n%s %s (line %d)\n", markerColor.Sprint(marker), label, deref(d.OldLine)+1)
		preview(w, deref(d.OldContent), removedColor)
	case diff.ChangeModified:
		similarity := 0.0
		if d.Details != nil {
			similarity = d.Details.Similarity
		}
		fmt.Fprintf(w, "\n%s %s (lines %d -> %d) [%.0f%% similar]\n",
			markerColor.Sprint(marker), label, deref(d.OldLine)+1, deref(d.NewLine)+1, similarity*100)
		removedColor.Fprintln(w, "  Old:")
		preview(w, deref(d.OldContent), removedColor)
		addedColor.Fprintln(w, "  New:")
		preview(w, deref(d.NewContent), addedColor)
	default:
		fmt.Fprintf(w, "\n%s %s (line %d)\n", marker, label, deref(d.OldLine)+1)
		preview(w, deref(d.OldContent), dimColor)
	}
}

func preview(w io.Writer, content string, c *color.Color) {
	lines := strings.Split(content, "\n")
	shown := lines
	if len(shown) > previewLines {
		shown = shown[:previewLines]
	}
	for _, line := range shown {
		c.Fprintf(w, "    %s\n", line)
	}
	if len(lines) > previewLines {
		dimColor.Fprintf(w, "    ... (%d more lines)\n", len(lines)-previewLines)
	}
}

// Elements writes the parsed structure of one template, one row per
// element, whitespace omitted.
func Elements(w io.Writer, label string, elements []prompt.Element) {
	headerColor.Fprintf(w, "Prompt structure: %s\n", label)
	for _, el := range elements {
		if el.Kind == prompt.KindWhitespace {
			continue
		}
		lines := fmt.Sprintf("%d", el.LineStart+1)
		if el.LineEnd != el.LineStart {
			lines = fmt.Sprintf("%d-%d", el.LineStart+1, el.LineEnd+1)
		}
		previewText := strings.ReplaceAll(el.Content, "\n", " ")
		if len(previewText) > 50 {
			previewText = previewText[:50] + "..."
		}
		variables := strings.Join(el.Metadata.Variables, ", ")
		if variables == "" {
			variables = "-"
		}
		fmt.Fprintf(w, "%8s  %-12s %-53s %s\n",
			lines, kindColor(el.Kind).Sprint(string(el.Kind)), previewText, variableColor.Sprint(variables))
	}
}

// SideBySide writes paired rows with their change markers.
func SideBySide(w io.Writer, oldLabel, newLabel string, rows []diff.Row, width int) {
	half := (width - 3) / 2
	headerColor.Fprintf(w, "%-*s | %s\n", half+2, oldLabel, newLabel)
	for _, r := range rows {
		// Pad before colorizing so ANSI escapes do not widen the column.
		left := fmt.Sprintf("%-*s", half, r.Old)
		right := r.New
		switch r.Marker {
		case '<':
			left = removedColor.Sprint(left)
		case '>':
			right = addedColor.Sprint(right)
		case '|':
			left = removedColor.Sprint(left)
			right = addedColor.Sprint(right)
		}
		fmt.Fprintf(w, "%c %s | %s\n", r.Marker, left, right)
	}
}

// Variables writes the sorted variable names of one template.
func Variables(w io.Writer, label string, names []string) {
	if len(names) == 0 {
		dimColor.Fprintln(w, "No variables found")
		return
	}
	headerColor.Fprintf(w, "Variables in %s:\n", label)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", variableColor.Sprintf("{{%s}}", name))
	}
	dimColor.Fprintf(w, "\nTotal: %d variables\n", len(names))
}

func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
