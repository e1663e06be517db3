package types

// PromptHit is one stored-template match returned by search_prompts.
type PromptHit struct {
	Name            string   `json:"name"`
	Version         int      `json:"version"`
	Syntax          string   `json:"syntax,omitempty"`
	Variables       []string `json:"variables,omitempty"`
	TokenCount      int      `json:"token_count"`
	CreatedAt       string   `json:"created_at"`
	SimilarityScore *float64 `json:"similarity_score,omitempty"`
}
