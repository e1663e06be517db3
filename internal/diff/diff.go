package diff

import (
	"sort"

	"github.com/promptops/promptdiff/internal/prompt"
)

// ChangeKind classifies the outcome of comparing one aligned pair.
type ChangeKind string

const (
	ChangeAdded     ChangeKind = "added"
	ChangeRemoved   ChangeKind = "removed"
	ChangeModified  ChangeKind = "modified"
	ChangeUnchanged ChangeKind = "unchanged"
)

// Details carries extra data about a single change. Similarity is only
// populated for modified elements.
type Details struct {
	Similarity float64 `json:"similarity"`
}

// ElementDiff is the comparison outcome for zero or one old element
// against zero or one new element. Added diffs have no old side,
// removed diffs no new side. ElementKind is taken from the old side
// when both exist; alignment guarantees the kinds are equal anyway.
type ElementDiff struct {
	ChangeKind  ChangeKind         `json:"change_kind"`
	ElementKind prompt.ElementKind `json:"element_kind"`
	OldContent  *string            `json:"old_content,omitempty"`
	NewContent  *string            `json:"new_content,omitempty"`
	OldLine     *int               `json:"old_line,omitempty"`
	NewLine     *int               `json:"new_line,omitempty"`
	Details     *Details           `json:"details,omitempty"`
}

// Summary aggregates a Result into per-kind counts plus the variable
// deltas and overall similarity.
type Summary struct {
	Added            int      `json:"added"`
	Removed          int      `json:"removed"`
	Modified         int      `json:"modified"`
	TotalChanges     int      `json:"total_changes"`
	AddedVariables   []string `json:"added_variables"`
	RemovedVariables []string `json:"removed_variables"`
	Similarity       float64  `json:"similarity"`
}

// Result is the full comparison output for one pair of templates. It is
// produced atomically by Compare and immutable afterwards.
type Result struct {
	OldLabel         string        `json:"old_label"`
	NewLabel         string        `json:"new_label"`
	Diffs            []ElementDiff `json:"element_diffs"`
	OldVariables     []string      `json:"old_variables"`
	NewVariables     []string      `json:"new_variables"`
	AddedVariables   []string      `json:"added_variables"`
	RemovedVariables []string      `json:"removed_variables"`
	Similarity       float64       `json:"similarity"`
}

// HasChanges reports whether any diff is not unchanged.
func (r *Result) HasChanges() bool {
	for _, d := range r.Diffs {
		if d.ChangeKind != ChangeUnchanged {
			return true
		}
	}
	return false
}

// Summary aggregates the change counts.
func (r *Result) Summary() Summary {
	s := Summary{
		AddedVariables:   r.AddedVariables,
		RemovedVariables: r.RemovedVariables,
		Similarity:       r.Similarity,
	}
	for _, d := range r.Diffs {
		switch d.ChangeKind {
		case ChangeAdded:
			s.Added++
		case ChangeRemoved:
			s.Removed++
		case ChangeModified:
			s.Modified++
		}
	}
	s.TotalChanges = s.Added + s.Removed + s.Modified
	return s
}

// Compare segments both templates, aligns their elements and classifies
// every aligned pair. It is total over UTF-8 text.
func Compare(oldText, oldLabel, newText, newLabel string) Result {
	oldElements := prompt.Segment(oldText)
	newElements := prompt.Segment(newText)

	oldVars := prompt.AllVariables(oldElements)
	newVars := prompt.AllVariables(newElements)

	pairs := Align(oldElements, newElements)
	diffs := make([]ElementDiff, 0, len(pairs))
	for _, pair := range pairs {
		diffs = append(diffs, classify(pair))
	}

	return Result{
		OldLabel:         oldLabel,
		NewLabel:         newLabel,
		Diffs:            diffs,
		OldVariables:     sortedNames(oldVars),
		NewVariables:     sortedNames(newVars),
		AddedVariables:   sortedNames(difference(newVars, oldVars)),
		RemovedVariables: sortedNames(difference(oldVars, newVars)),
		Similarity:       Similarity(oldText, newText),
	}
}

func classify(pair Pair) ElementDiff {
	switch {
	case pair.Old == nil:
		return ElementDiff{
			ChangeKind:  ChangeAdded,
			ElementKind: pair.New.Kind,
			NewContent:  &pair.New.Content,
			NewLine:     &pair.New.LineStart,
		}
	case pair.New == nil:
		return ElementDiff{
			ChangeKind:  ChangeRemoved,
			ElementKind: pair.Old.Kind,
			OldContent:  &pair.Old.Content,
			OldLine:     &pair.Old.LineStart,
		}
	case pair.Old.Content == pair.New.Content:
		return ElementDiff{
			ChangeKind:  ChangeUnchanged,
			ElementKind: pair.Old.Kind,
			OldContent:  &pair.Old.Content,
			NewContent:  &pair.New.Content,
			OldLine:     &pair.Old.LineStart,
			NewLine:     &pair.New.LineStart,
		}
	default:
		return ElementDiff{
			ChangeKind:  ChangeModified,
			ElementKind: pair.Old.Kind,
			OldContent:  &pair.Old.Content,
			NewContent:  &pair.New.Content,
			OldLine:     &pair.Old.LineStart,
			NewLine:     &pair.New.LineStart,
			Details:     &Details{Similarity: Similarity(pair.Old.Content, pair.New.Content)},
		}
	}
}

func difference(a, b map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	for name := range a {
		if _, ok := b[name]; !ok {
			out[name] = struct{}{}
		}
	}
	return out
}

func sortedNames(set map[string]struct{}) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
