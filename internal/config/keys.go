package config

const (
	KeyPostgresURL    = "postgres_url"
	KeyDBDebug        = "db_debug"
	KeyLogLevel       = "log_level"
	KeyOllamaURL      = "ollama_url"
	KeyEmbeddingModel = "embedding_model_name"
	KeyExplainEnabled = "explain_enabled"
	KeyExplainModel   = "explain_model"
	KeyExplainTimeout = "explain_timeout_seconds"
	KeyGitHubToken    = "github_token"
	KeyTokenModel     = "token_model"
	KeyDiffContext    = "diff_context_lines"
	KeyDiffWidth      = "diff_width"
)
