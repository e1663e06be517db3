package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptops/promptdiff/internal/config"
	"github.com/promptops/promptdiff/internal/diff"
	"github.com/promptops/promptdiff/internal/explain"
	"github.com/promptops/promptdiff/internal/logging"
	"github.com/promptops/promptdiff/internal/remote"
	"github.com/promptops/promptdiff/internal/render"
	"github.com/promptops/promptdiff/internal/source"
)

var compareCmd = &cobra.Command{
	Use:   "compare <old-file> <new-file>",
	Short: "Semantically compare two prompt templates",
	Long: `Compare two template files (or one path at two git refs when
--repo is set) and report element-level changes, variable additions and
removals, and an overall similarity score. Exits with status 1 when the
templates differ.`,
	RunE: runCompare,
}

func init() {
	addOutputFlags(compareCmd)
	compareCmd.Flags().String("json-path", "", "Read templates from this gjson path of JSON files")
	compareCmd.Flags().String("repo", "", "GitHub repository URL to fetch the template from")
	compareCmd.Flags().String("old-ref", "", "Git ref of the old version (requires --repo)")
	compareCmd.Flags().String("new-ref", "HEAD", "Git ref of the new version (requires --repo)")
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "semantic", "Output format: semantic, unified, side-by-side or json")
	cmd.Flags().Bool("show-unchanged", false, "Include unchanged elements in the output")
	cmd.Flags().Int("context", -1, "Context lines for unified output (default from config)")
	cmd.Flags().Int("width", 0, "Total width for side-by-side output (default from config)")
	cmd.Flags().Bool("explain", false, "Summarize the changes with a local LLM")
}

func runCompare(cmd *cobra.Command, args []string) error {
	repoURL, _ := cmd.Flags().GetString("repo")

	var oldText, newText, oldLabel, newLabel string
	if repoURL != "" {
		if len(args) != 1 {
			return errors.New("exactly one template path is required with --repo")
		}
		oldRef, _ := cmd.Flags().GetString("old-ref")
		newRef, _ := cmd.Flags().GetString("new-ref")
		if oldRef == "" {
			return errors.New("--old-ref is required with --repo")
		}
		fetcher, err := remote.NewFileFetcher(remote.NewGitHubClient(config.GitHubToken()), repoURL)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if oldText, err = fetcher.FileAt(ctx, args[0], oldRef); err != nil {
			return err
		}
		if newText, err = fetcher.FileAt(ctx, args[0], newRef); err != nil {
			return err
		}
		oldLabel = args[0] + "@" + oldRef
		newLabel = args[0] + "@" + newRef
	} else {
		if len(args) != 2 {
			return errors.New("two template files are required")
		}
		jsonPath, _ := cmd.Flags().GetString("json-path")
		oldTpl, err := source.Load(args[0], jsonPath)
		if err != nil {
			return err
		}
		newTpl, err := source.Load(args[1], jsonPath)
		if err != nil {
			return err
		}
		oldText, oldLabel = oldTpl.Text, oldTpl.Label
		newText, newLabel = newTpl.Text, newTpl.Label
	}

	return renderComparison(cmd, oldText, oldLabel, newText, newLabel)
}

// renderComparison is shared by compare and compare-versions. It writes
// the requested format and records the process exit code.
func renderComparison(cmd *cobra.Command, oldText, oldLabel, newText, newLabel string) error {
	format, _ := cmd.Flags().GetString("format")
	showUnchanged, _ := cmd.Flags().GetBool("show-unchanged")
	contextLines, _ := cmd.Flags().GetInt("context")
	if !cmd.Flags().Changed("context") {
		contextLines = config.DiffContext()
	}
	width, _ := cmd.Flags().GetInt("width")
	if width <= 0 {
		width = config.DiffWidth()
	}

	result := diff.Compare(oldText, oldLabel, newText, newLabel)
	if result.HasChanges() {
		exitCode = 1
	}
	w := cmd.OutOrStdout()

	switch format {
	case "semantic":
		render.Semantic(w, result, showUnchanged)
		return explainResult(cmd.Context(), cmd, result)
	case "unified":
		fmt.Fprint(w, diff.Unified(oldText, newText, oldLabel, newLabel, contextLines))
		return nil
	case "side-by-side":
		rows := diff.SideBySide(oldText, newText, width)
		render.SideBySide(w, oldLabel, newLabel, rows, width)
		return nil
	case "json":
		data, err := render.ResultJSON(result, showUnchanged)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func explainResult(ctx context.Context, cmd *cobra.Command, result diff.Result) error {
	flagged, _ := cmd.Flags().GetBool("explain")
	enabled := flagged || config.ExplainEnabled()
	if !enabled {
		return nil
	}

	explainer, err := explain.New(explain.Config{
		Enabled:     true,
		ModelName:   config.ExplainModel(),
		OllamaURL:   config.OllamaURL(),
		CallTimeout: config.ExplainTimeout(),
		Logger:      logging.ForLevel(config.LogLevel()),
	})
	if err != nil {
		return err
	}
	summary, err := explainer.Explain(ctx, result)
	if err != nil {
		return err
	}
	if summary != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "\nExplanation:\n%s\n", summary)
	}
	return nil
}
