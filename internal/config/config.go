// Package config centralizes viper-backed configuration for all
// promptdiff binaries. Every key is read through a typed accessor so
// callers never touch raw key strings.
package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Init binds environment variables, an optional .env file and the root
// command's persistent flags into viper, then applies defaults.
func Init(root *cobra.Command) {
	viper.AutomaticEnv()
	_ = godotenv.Load()
	if root != nil {
		_ = viper.BindPFlags(root.PersistentFlags())
	}
	setDefaults()
}

func setDefaults() {
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyOllamaURL, "http://localhost:11434")
	viper.SetDefault(KeyEmbeddingModel, "nomic-embed-text")
	viper.SetDefault(KeyExplainEnabled, false)
	viper.SetDefault(KeyExplainModel, "phi3")
	viper.SetDefault(KeyExplainTimeout, 120)
	viper.SetDefault(KeyTokenModel, "gpt-4o-mini")
	viper.SetDefault(KeyDiffContext, 3)
	viper.SetDefault(KeyDiffWidth, 80)
	viper.SetDefault(KeyDBDebug, false)
}

func PostgresURL() string    { return viper.GetString(KeyPostgresURL) }
func DBDebug() bool          { return viper.GetBool(KeyDBDebug) }
func LogLevel() string       { return viper.GetString(KeyLogLevel) }
func OllamaURL() string      { return viper.GetString(KeyOllamaURL) }
func EmbeddingModel() string { return viper.GetString(KeyEmbeddingModel) }
func ExplainEnabled() bool   { return viper.GetBool(KeyExplainEnabled) }
func ExplainModel() string   { return viper.GetString(KeyExplainModel) }
func ExplainTimeout() time.Duration {
	return time.Duration(viper.GetInt(KeyExplainTimeout)) * time.Second
}
func GitHubToken() string { return viper.GetString(KeyGitHubToken) }
func TokenModel() string  { return viper.GetString(KeyTokenModel) }
func DiffContext() int    { return viper.GetInt(KeyDiffContext) }
func DiffWidth() int      { return viper.GetInt(KeyDiffWidth) }
