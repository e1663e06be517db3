package tools

import (
	"context"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/promptops/promptdiff/internal/prompt"
)

// ListVariablesHandler reports the variable names and detected dialect
// of a prompt text.
type ListVariablesHandler struct{}

func (h *ListVariablesHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, ok := req.GetArguments()["text"].(string)
	if !ok {
		return mcp.NewToolResultError("text parameter is required"), nil
	}

	vars := prompt.AllVariables(prompt.Segment(text))
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	payload := struct {
		Syntax    string   `json:"syntax"`
		Variables []string `json:"variables"`
		Total     int      `json:"total"`
	}{Syntax: prompt.DetectSyntax(text), Variables: names, Total: len(names)}
	return mcp.NewToolResultText(string(mustMarshal(payload))), nil
}
