package mcp

import (
	"log"

	"github.com/mark3labs/mcp-go/server"

	"github.com/promptops/promptdiff/internal/config"
	"github.com/promptops/promptdiff/internal/embeddings"
	"github.com/promptops/promptdiff/internal/mcp/tools"
	"github.com/promptops/promptdiff/internal/store"
)

type Config struct {
	ToolAdapters map[string]ToolAdapter
	Options      []server.StreamableHTTPOption
	Database     *store.Database
}

// DefaultConfig wires the stateless template tools and, when a Postgres
// URL is configured, the embedding-backed search tool.
func DefaultConfig() Config {
	adapters := map[string]ToolAdapter{
		"compare_prompts": &tools.ComparePromptsHandler{},
		"parse_prompt":    &tools.ParsePromptHandler{},
		"list_variables":  &tools.ListVariablesHandler{},
	}

	var database *store.Database
	if dsn := config.PostgresURL(); dsn != "" {
		var err error
		database, err = store.NewDatabase(store.Config{DSN: dsn, Debug: config.DBDebug()})
		if err != nil {
			log.Fatalf("failed to connect database: %v", err)
		}

		embedClient, err := embeddings.NewClient(config.OllamaURL(), config.EmbeddingModel(), config.ExplainTimeout())
		if err != nil {
			log.Fatalf("failed to create embedding client: %v", err)
		}
		repo := store.NewVersionRepository(database)
		adapters["search_prompts"] = &tools.SearchPromptsHandler{
			Service: tools.NewDBSearchService(repo, embedClient),
		}
	}

	return Config{
		ToolAdapters: adapters,
		Options: []server.StreamableHTTPOption{
			server.WithEndpointPath("/mcp/jsonrpc"),
			server.WithStateLess(true),
		},
		Database: database,
	}
}
