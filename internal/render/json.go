package render

import (
	"encoding/json"

	"github.com/promptops/promptdiff/internal/diff"
	"github.com/promptops/promptdiff/internal/prompt"
)

// ResultJSON serializes a diff result, with unchanged pairs filtered
// out unless requested. Element kinds, change kinds and the similarity
// detail are emitted verbatim as the serialization contract.
func ResultJSON(result diff.Result, showUnchanged bool) ([]byte, error) {
	filtered := result
	if !showUnchanged {
		var diffs []diff.ElementDiff
		for _, d := range result.Diffs {
			if d.ChangeKind != diff.ChangeUnchanged {
				diffs = append(diffs, d)
			}
		}
		filtered.Diffs = diffs
	}
	payload := struct {
		diff.Result
		Summary diff.Summary `json:"summary"`
	}{Result: filtered, Summary: result.Summary()}
	return json.MarshalIndent(payload, "", "  ")
}

// ElementsJSON serializes a segmented template.
func ElementsJSON(elements []prompt.Element) ([]byte, error) {
	return json.MarshalIndent(elements, "", "  ")
}
