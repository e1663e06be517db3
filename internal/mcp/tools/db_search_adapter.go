package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/promptops/promptdiff/internal/embeddings"
	"github.com/promptops/promptdiff/internal/mcp/tools/types"
	"github.com/promptops/promptdiff/internal/store"
)

type DBSearchService struct {
	Repository  *store.VersionRepository
	EmbedClient *embeddings.Client
}

func NewDBSearchService(repo *store.VersionRepository, embed *embeddings.Client) *DBSearchService {
	return &DBSearchService{Repository: repo, EmbedClient: embed}
}

func (s *DBSearchService) SearchPrompts(ctx context.Context, query string, limit int) ([]types.PromptHit, error) {
	if strings.TrimSpace(query) == "" {
		return []types.PromptHit{}, nil
	}

	vectors, err := s.EmbedClient.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) == 0 {
		return []types.PromptHit{}, nil
	}

	rows, err := s.Repository.SearchSimilar(ctx, vectors[0], limit)
	if err != nil {
		return nil, fmt.Errorf("search embeddings: %w", err)
	}

	results := make([]types.PromptHit, 0, len(rows))
	for _, row := range rows {
		similarity := 1 - (row.Distance / 2.0)
		results = append(results, toPromptHit(row.PromptVersion, &similarity))
	}
	return results, nil
}

func toPromptHit(v store.PromptVersion, similarity *float64) types.PromptHit {
	return types.PromptHit{
		Name:            v.Name,
		Version:         v.Version,
		Syntax:          v.Syntax,
		Variables:       v.Variables,
		TokenCount:      v.TokenCount,
		CreatedAt:       v.CreatedAt.Format(time.RFC3339),
		SimilarityScore: similarity,
	}
}
