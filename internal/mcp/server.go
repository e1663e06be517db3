package mcp

import (
	"context"
	"log"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/promptops/promptdiff/internal/store"
)

type ToolAdapter interface {
	ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

type Server struct {
	MCP     *server.MCPServer
	HTTP    *server.StreamableHTTPServer
	Handler http.Handler
	DB      *store.Database
}

func New(cfg Config) *Server {
	mcpServer := server.NewMCPServer(
		"promptdiff-server",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	// Register tools with their proper schemas using mcp-go builder pattern
	toolDefinitions := map[string]mcp.Tool{
		"compare_prompts": mcp.NewTool("compare_prompts",
			mcp.WithDescription("Semantically compare two prompt templates. Returns element-level diffs, variable additions and removals, and an overall similarity score."),
			mcp.WithString("old_text",
				mcp.Required(),
				mcp.Description("The old version of the prompt template"),
			),
			mcp.WithString("new_text",
				mcp.Required(),
				mcp.Description("The new version of the prompt template"),
			),
			mcp.WithString("old_label",
				mcp.Description("Label for the old version (default: 'old')"),
			),
			mcp.WithString("new_label",
				mcp.Description("Label for the new version (default: 'new')"),
			),
			mcp.WithBoolean("show_unchanged",
				mcp.Description("Include unchanged elements in the diff list (default: false)"),
			),
		),
		"parse_prompt": mcp.NewTool("parse_prompt",
			mcp.WithDescription("Segment a prompt template into typed semantic elements (instructions, examples, roles, comments, text) with line ranges and variable annotations."),
			mcp.WithString("text",
				mcp.Required(),
				mcp.Description("The prompt template text to parse"),
			),
		),
		"list_variables": mcp.NewTool("list_variables",
			mcp.WithDescription("Extract the template variables of a prompt and report its detected templating dialect."),
			mcp.WithString("text",
				mcp.Required(),
				mcp.Description("The prompt template text to inspect"),
			),
		),
		"search_prompts": mcp.NewTool("search_prompts",
			mcp.WithDescription("Semantic search across saved prompt versions using embeddings. Returns matching templates with similarity scores."),
			mcp.WithString("query",
				mcp.Required(),
				mcp.Description("Natural language search query (e.g., 'customer support greeting')"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of results to return (default: 10)"),
			),
		),
	}

	for name, adapter := range cfg.ToolAdapters {
		tool := toolDefinitions[name]
		mcpServer.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return adapter.ToolAdapter(ctx, req)
		})
	}

	httpServer := server.NewStreamableHTTPServer(mcpServer, cfg.Options...)

	return &Server{
		MCP:     mcpServer,
		HTTP:    httpServer,
		Handler: httpServer,
		DB:      cfg.Database,
	}
}

func (s *Server) Close() {
	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			log.Printf("error closing database: %v", err)
		}
	}
}
