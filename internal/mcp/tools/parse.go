package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/promptops/promptdiff/internal/prompt"
	"github.com/promptops/promptdiff/internal/tokens"
)

// ParsePromptHandler segments a prompt text into its semantic elements.
type ParsePromptHandler struct{}

func (h *ParsePromptHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, ok := req.GetArguments()["text"].(string)
	if !ok {
		return mcp.NewToolResultError("text parameter is required"), nil
	}

	elements := prompt.Segment(text)
	syntax := prompt.SyntaxPlain
	if len(elements) > 0 {
		syntax = elements[0].Metadata.Syntax
	}
	payload := struct {
		Syntax     string           `json:"syntax"`
		TokenCount int              `json:"token_count"`
		Elements   []prompt.Element `json:"elements"`
	}{Syntax: syntax, TokenCount: tokens.Estimate(text), Elements: elements}
	return mcp.NewToolResultText(string(mustMarshal(payload))), nil
}
