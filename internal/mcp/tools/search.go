package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/promptops/promptdiff/internal/mcp/tools/types"
)

type SearchService interface {
	SearchPrompts(ctx context.Context, query string, limit int) ([]types.PromptHit, error)
}

// SearchPromptsHandler answers semantic searches over the stored
// template versions.
type SearchPromptsHandler struct{ Service SearchService }

func (h *SearchPromptsHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	query, _ := args["query"].(string)
	if strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("query parameter is required"), nil
	}
	limit := 10
	if raw, ok := args["limit"].(float64); ok {
		if int(raw) > 0 {
			limit = int(raw)
		}
	}

	results, err := h.Service.SearchPrompts(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	response := struct {
		Query   string            `json:"query"`
		Results []types.PromptHit `json:"results"`
		Total   int               `json:"total_found"`
	}{Query: query, Results: results, Total: len(results)}

	return mcp.NewToolResultText(string(mustMarshal(response))), nil
}
