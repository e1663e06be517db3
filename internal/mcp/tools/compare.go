package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/promptops/promptdiff/internal/diff"
)

// ComparePromptsHandler runs the semantic diff pipeline over two prompt
// texts supplied inline by the caller.
type ComparePromptsHandler struct{}

func (h *ComparePromptsHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	oldText, oldOK := args["old_text"].(string)
	newText, newOK := args["new_text"].(string)
	if !oldOK || !newOK {
		return mcp.NewToolResultError("old_text and new_text parameters are required"), nil
	}
	oldLabel := stringArg(args, "old_label", "old")
	newLabel := stringArg(args, "new_label", "new")
	showUnchanged, _ := args["show_unchanged"].(bool)

	result := diff.Compare(oldText, oldLabel, newText, newLabel)
	if !showUnchanged {
		var diffs []diff.ElementDiff
		for _, d := range result.Diffs {
			if d.ChangeKind != diff.ChangeUnchanged {
				diffs = append(diffs, d)
			}
		}
		result.Diffs = diffs
	}

	payload := struct {
		diff.Result
		Summary diff.Summary `json:"summary"`
	}{Result: result, Summary: result.Summary()}
	return mcp.NewToolResultText(string(mustMarshal(payload))), nil
}

func stringArg(args map[string]any, key, fallback string) string {
	if v, ok := args[key].(string); ok && v != "" {
		return v
	}
	return fallback
}
