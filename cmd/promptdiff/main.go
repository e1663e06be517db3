package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/promptops/promptdiff/internal/config"
	"github.com/promptops/promptdiff/internal/prompt"
	"github.com/promptops/promptdiff/internal/render"
	"github.com/promptops/promptdiff/internal/source"
	"github.com/promptops/promptdiff/internal/tokens"
)

var rootCmd = &cobra.Command{
	Use:   "promptdiff",
	Short: "Semantic diff for LLM prompt templates",
	Long: `promptdiff segments prompt templates into semantic elements
(instructions, examples, roles, comments, text), aligns them across two
versions and reports what actually changed: wording, structure and
template variables rather than raw lines.`,
	SilenceUsage: true,
}

// exitCode lets compare signal detected changes without aborting
// cobra's error handling.
var exitCode int

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Show the semantic structure of a prompt template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonPath, _ := cmd.Flags().GetString("json-path")
		asJSON, _ := cmd.Flags().GetBool("json")

		tpl, err := source.Load(args[0], jsonPath)
		if err != nil {
			return err
		}
		elements := prompt.Segment(tpl.Text)

		if asJSON {
			data, err := render.ElementsJSON(elements)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}
		render.Elements(cmd.OutOrStdout(), tpl.Label, elements)
		fmt.Fprintf(cmd.OutOrStdout(), "\nSyntax: %s, ~%d tokens\n",
			prompt.DetectSyntax(tpl.Text), tokens.Estimate(tpl.Text))
		return nil
	},
}

var variablesCmd = &cobra.Command{
	Use:   "variables <file>",
	Short: "List the template variables of a prompt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonPath, _ := cmd.Flags().GetString("json-path")
		asJSON, _ := cmd.Flags().GetBool("json")

		tpl, err := source.Load(args[0], jsonPath)
		if err != nil {
			return err
		}
		names := sortedVariables(tpl.Text)
		syntax := prompt.DetectSyntax(tpl.Text)

		if asJSON {
			payload := struct {
				Syntax    string   `json:"syntax"`
				Variables []string `json:"variables"`
				Total     int      `json:"total"`
			}{Syntax: syntax, Variables: names, Total: len(names)}
			data, err := marshalIndent(payload)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}
		render.Variables(cmd.OutOrStdout(), tpl.Label, names)
		fmt.Fprintf(cmd.OutOrStdout(), "Syntax: %s\n", syntax)
		return nil
	},
}

func marshalIndent(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func sortedVariables(text string) []string {
	set := prompt.AllVariables(prompt.Segment(text))
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func main() {
	rootCmd.PersistentFlags().String("postgres-url", "", "Postgres connection URL for the template store")
	rootCmd.PersistentFlags().String("ollama-url", "", "Ollama base URL for embeddings and explanations")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (info, debug)")

	config.Init(rootCmd)
	_ = viper.BindPFlag(config.KeyPostgresURL, rootCmd.PersistentFlags().Lookup("postgres-url"))
	_ = viper.BindPFlag(config.KeyOllamaURL, rootCmd.PersistentFlags().Lookup("ollama-url"))
	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))

	parseCmd.Flags().Bool("json", false, "Emit the structure as JSON")
	parseCmd.Flags().String("json-path", "", "Read the template from this gjson path of a JSON file")
	variablesCmd.Flags().Bool("json", false, "Emit the variables as JSON")
	variablesCmd.Flags().String("json-path", "", "Read the template from this gjson path of a JSON file")

	rootCmd.AddCommand(compareCmd, parseCmd, variablesCmd,
		saveCmd, versionsCmd, showCmd, compareVersionsCmd, searchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "promptdiff: %v\n", err)
		os.Exit(2)
	}
	os.Exit(exitCode)
}
