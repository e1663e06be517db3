package tools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/promptops/promptdiff/internal/mcp/tools/types"
)

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func textPayload(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) != 1 {
		t.Fatalf("expected one content block, got %d", len(res.Content))
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	return tc.Text
}

func TestComparePromptsRequiresTexts(t *testing.T) {
	h := &ComparePromptsHandler{}
	res, err := h.ToolAdapter(context.Background(), callRequest(map[string]any{"old_text": "hi"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected an error result when new_text is missing")
	}
}

func TestComparePromptsPayload(t *testing.T) {
	h := &ComparePromptsHandler{}
	req := callRequest(map[string]any{
		"old_text": "Hello {{name}}, welcome.",
		"new_text": "Hello {{full_name}}, welcome.",
	})
	res, err := h.ToolAdapter(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var payload struct {
		OldLabel string `json:"old_label"`
		Summary  struct {
			TotalChanges   int      `json:"total_changes"`
			AddedVariables []string `json:"added_variables"`
		} `json:"summary"`
	}
	if err := json.Unmarshal([]byte(textPayload(t, res)), &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.OldLabel != "old" {
		t.Fatalf("expected default old label, got %q", payload.OldLabel)
	}
	if payload.Summary.TotalChanges == 0 {
		t.Fatal("expected at least one change")
	}
	if len(payload.Summary.AddedVariables) != 1 || payload.Summary.AddedVariables[0] != "full_name" {
		t.Fatalf("unexpected added variables: %v", payload.Summary.AddedVariables)
	}
}

func TestParsePromptPayload(t *testing.T) {
	h := &ParsePromptHandler{}
	res, err := h.ToolAdapter(context.Background(), callRequest(map[string]any{
		"text": "Always answer politely.\n\nHello {{name}}!",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var payload struct {
		Syntax     string `json:"syntax"`
		TokenCount int    `json:"token_count"`
		Elements   []struct {
			Kind string `json:"kind"`
		} `json:"elements"`
	}
	if err := json.Unmarshal([]byte(textPayload(t, res)), &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.Syntax == "" {
		t.Fatal("expected a detected syntax")
	}
	if payload.TokenCount <= 0 {
		t.Fatalf("expected a positive token count, got %d", payload.TokenCount)
	}
	if len(payload.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(payload.Elements))
	}
}

func TestListVariablesPayload(t *testing.T) {
	h := &ListVariablesHandler{}
	res, err := h.ToolAdapter(context.Background(), callRequest(map[string]any{
		"text": "Hi {{user}}, your order {{order_id}} shipped.",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var payload struct {
		Variables []string `json:"variables"`
		Total     int      `json:"total"`
	}
	if err := json.Unmarshal([]byte(textPayload(t, res)), &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.Total != 2 {
		t.Fatalf("expected 2 variables, got %d", payload.Total)
	}
	if payload.Variables[0] != "order_id" || payload.Variables[1] != "user" {
		t.Fatalf("expected sorted names, got %v", payload.Variables)
	}
}

type fakeSearchService struct {
	query string
	limit int
	hits  []types.PromptHit
	err   error
}

func (f *fakeSearchService) SearchPrompts(ctx context.Context, query string, limit int) ([]types.PromptHit, error) {
	f.query = query
	f.limit = limit
	return f.hits, f.err
}

func TestSearchPromptsHandler(t *testing.T) {
	score := 0.91
	svc := &fakeSearchService{hits: []types.PromptHit{{
		Name: "greeting", Version: 3, SimilarityScore: &score,
	}}}
	h := &SearchPromptsHandler{Service: svc}

	res, err := h.ToolAdapter(context.Background(), callRequest(map[string]any{
		"query": "greeting prompts",
		"limit": float64(5),
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.query != "greeting prompts" || svc.limit != 5 {
		t.Fatalf("service called with query=%q limit=%d", svc.query, svc.limit)
	}
	payload := textPayload(t, res)
	if !strings.Contains(payload, `"total_found":1`) {
		t.Fatalf("expected one hit in payload: %s", payload)
	}
	if !strings.Contains(payload, `"similarity_score":0.91`) {
		t.Fatalf("expected similarity score in payload: %s", payload)
	}
}

func TestSearchPromptsRequiresQuery(t *testing.T) {
	h := &SearchPromptsHandler{Service: &fakeSearchService{}}
	res, err := h.ToolAdapter(context.Background(), callRequest(map[string]any{"query": "  "}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected an error result for a blank query")
	}
}
