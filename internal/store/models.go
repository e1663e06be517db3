// Package store persists versioned prompt templates in Postgres, with
// optional pgvector embeddings for similarity search.
package store

import (
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/uptrace/bun"
)

// PromptVersion is one saved revision of a named prompt template.
// Version numbers start at 1 and increase per name.
type PromptVersion struct {
	bun.BaseModel `bun:"table:prompt_versions"`

	ID             int64            `bun:"id,pk,autoincrement"`
	Name           string           `bun:"name,notnull"`
	Version        int              `bun:"version,notnull"`
	Body           string           `bun:"body,notnull"`
	Syntax         string           `bun:"syntax"`
	Variables      []string         `bun:"variables,array"`
	TokenCount     int              `bun:"token_count"`
	Embedding      *pgvector.Vector `bun:"embedding"` // NULL when embedding was skipped
	EmbeddingModel string           `bun:"embedding_model"`
	CreatedAt      time.Time        `bun:"created_at,nullzero,default:now()"`
}
