package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	pgvector "github.com/pgvector/pgvector-go"
	"github.com/spf13/cobra"

	"github.com/promptops/promptdiff/internal/config"
	"github.com/promptops/promptdiff/internal/embeddings"
	"github.com/promptops/promptdiff/internal/logging"
	"github.com/promptops/promptdiff/internal/mcp/tools"
	"github.com/promptops/promptdiff/internal/prompt"
	"github.com/promptops/promptdiff/internal/source"
	"github.com/promptops/promptdiff/internal/store"
	"github.com/promptops/promptdiff/internal/tokens"
)

var saveCmd = &cobra.Command{
	Use:   "save <file>",
	Short: "Save a template revision to the version store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonPath, _ := cmd.Flags().GetString("json-path")
		name, _ := cmd.Flags().GetString("name")
		noEmbed, _ := cmd.Flags().GetBool("no-embed")

		tpl, err := source.Load(args[0], jsonPath)
		if err != nil {
			return err
		}
		if name == "" {
			name = tpl.Meta.Name
		}
		if name == "" {
			return errors.New("template name is required (--name or front matter)")
		}

		version := &store.PromptVersion{
			Name:       name,
			Body:       tpl.Text,
			Syntax:     prompt.DetectSyntax(tpl.Text),
			Variables:  sortedVariables(tpl.Text),
			TokenCount: tokens.Estimate(tpl.Text),
		}

		if !noEmbed {
			log := logging.New(logging.ForLevel(config.LogLevel()))
			client, err := embeddings.NewClient(config.OllamaURL(), config.EmbeddingModel(), config.ExplainTimeout())
			if err != nil {
				return err
			}
			vec, err := client.EmbedText(cmd.Context(), tpl.Text)
			if err != nil {
				log.Error(err, "embedding failed, saving without one", "name", name)
			} else {
				v := pgvector.NewVector(vec)
				version.Embedding = &v
				version.EmbeddingModel = client.Model()
			}
		}

		return runWithStore(func(database *store.Database) error {
			if err := database.Bootstrap(cmd.Context()); err != nil {
				return err
			}
			repo := store.NewVersionRepository(database)
			if err := repo.SaveVersion(cmd.Context(), version); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s@%d (%d tokens, %d variables)\n",
				version.Name, version.Version, version.TokenCount, len(version.Variables))
			return nil
		})
	},
}

var versionsCmd = &cobra.Command{
	Use:   "versions [name]",
	Short: "List stored templates, or the revisions of one template",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithStore(func(database *store.Database) error {
			repo := store.NewVersionRepository(database)
			if len(args) == 0 {
				names, err := repo.ListNames(cmd.Context())
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}

			versions, err := repo.ListVersions(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(versions) == 0 {
				return fmt.Errorf("%s: %w", args[0], store.ErrNotFound)
			}
			for _, v := range versions {
				fmt.Fprintf(cmd.OutOrStdout(), "v%-4d %s  %4d tokens  %2d variables  %s\n",
					v.Version, v.CreatedAt.Format(time.RFC3339), v.TokenCount, len(v.Variables), v.Syntax)
			}
			return nil
		})
	},
}

var showCmd = &cobra.Command{
	Use:   "show <name> [version]",
	Short: "Print the body of a stored template revision",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithStore(func(database *store.Database) error {
			repo := store.NewVersionRepository(database)
			v, err := resolveVersion(cmd, repo, args[0], args[1:])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), v.Body)
			return nil
		})
	},
}

var compareVersionsCmd = &cobra.Command{
	Use:   "compare-versions <name> <old-version> [new-version]",
	Short: "Semantically compare two stored revisions of a template",
	Long: `Compare two saved revisions of a named template. When the new
version is omitted the latest revision is used. Exits with status 1
when the revisions differ.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithStore(func(database *store.Database) error {
			repo := store.NewVersionRepository(database)
			oldV, err := resolveVersion(cmd, repo, args[0], args[1:2])
			if err != nil {
				return err
			}
			newV, err := resolveVersion(cmd, repo, args[0], args[2:])
			if err != nil {
				return err
			}
			return renderComparison(cmd,
				oldV.Body, fmt.Sprintf("%s@v%d", oldV.Name, oldV.Version),
				newV.Body, fmt.Sprintf("%s@v%d", newV.Name, newV.Version))
		})
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Semantic search across saved template revisions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return runWithStore(func(database *store.Database) error {
			client, err := embeddings.NewClient(config.OllamaURL(), config.EmbeddingModel(), config.ExplainTimeout())
			if err != nil {
				return err
			}
			svc := tools.NewDBSearchService(store.NewVersionRepository(database), client)
			hits, err := svc.SearchPrompts(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			if len(hits) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no matches")
				return nil
			}
			for _, hit := range hits {
				score := 0.0
				if hit.SimilarityScore != nil {
					score = *hit.SimilarityScore
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%5.1f%%  %s@v%d  %d tokens  %s\n",
					score*100, hit.Name, hit.Version, hit.TokenCount, hit.Syntax)
			}
			return nil
		})
	},
}

func init() {
	saveCmd.Flags().String("name", "", "Template name (defaults to the front matter name)")
	saveCmd.Flags().Bool("no-embed", false, "Skip computing an embedding for the revision")
	saveCmd.Flags().String("json-path", "", "Read the template from this gjson path of a JSON file")
	addOutputFlags(compareVersionsCmd)
	searchCmd.Flags().Int("limit", 10, "Maximum number of results")
}

// resolveVersion picks an explicit revision when one is given, the
// latest otherwise.
func resolveVersion(cmd *cobra.Command, repo *store.VersionRepository, name string, args []string) (*store.PromptVersion, error) {
	if len(args) == 0 {
		return repo.Latest(cmd.Context(), name)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", args[0], err)
	}
	return repo.GetVersion(cmd.Context(), name, n)
}

func runWithStore(fn func(*store.Database) error) error {
	dsn := config.PostgresURL()
	if dsn == "" {
		return errors.New("postgres DSN must be provided via --postgres-url or POSTGRES_URL")
	}
	database, err := store.NewDatabase(store.Config{DSN: dsn, Debug: config.DBDebug()})
	if err != nil {
		return err
	}
	defer database.Close()
	return fn(database)
}
