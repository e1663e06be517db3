// Package explain turns a classified semantic diff into a short
// natural-language review using a local LLM.
package explain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/promptops/promptdiff/internal/diff"
	"github.com/promptops/promptdiff/internal/logging"
)

// Config controls the explainer. A zero Enabled short-circuits Explain
// without touching the network.
type Config struct {
	Enabled     bool
	ModelName   string
	OllamaURL   string
	CallTimeout time.Duration
	Logger      logr.Logger
}

// Explainer renders diff results into a review prompt and queries the
// configured model.
type Explainer struct {
	cfg    Config
	log    logging.Logger
	client *llmClient
}

// New builds an Explainer. The LLM client is only created when the
// explainer is enabled.
func New(cfg Config) (*Explainer, error) {
	e := &Explainer{cfg: cfg, log: logging.New(cfg.Logger)}
	if !cfg.Enabled {
		return e, nil
	}
	client, err := newLLMClient(cfg, cfg.Logger)
	if err != nil {
		return nil, err
	}
	e.client = client
	return e, nil
}

// Explain produces a human summary of the result. Returns an empty
// string when disabled or when there is nothing to explain.
func (e *Explainer) Explain(ctx context.Context, result diff.Result) (string, error) {
	if !e.cfg.Enabled {
		e.log.Debug("explainer disabled")
		return "", nil
	}
	changes := renderChanges(result)
	if changes == "" {
		return "", nil
	}

	prompt := strings.ReplaceAll(explainPromptTemplate, "{{.OldLabel}}", result.OldLabel)
	prompt = strings.ReplaceAll(prompt, "{{.NewLabel}}", result.NewLabel)
	prompt = strings.ReplaceAll(prompt, "{{.Similarity}}", fmt.Sprintf("%.1f%%", result.Similarity*100))
	prompt = strings.ReplaceAll(prompt, "{{.Changes}}", changes)

	e.log.Debug("requesting diff explanation", "model", e.cfg.ModelName)
	summary, err := e.client.generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("explain diff: %w", err)
	}
	return strings.TrimSpace(summary), nil
}

const maxContentLines = 4

// renderChanges lays the classified changes out as plain text for the
// review prompt. Unchanged pairs are omitted.
func renderChanges(result diff.Result) string {
	var b strings.Builder
	for _, d := range result.Diffs {
		switch d.ChangeKind {
		case diff.ChangeAdded:
			fmt.Fprintf(&b, "+ added %s:\n%s\n", d.ElementKind, indent(clip(deref(d.NewContent))))
		case diff.ChangeRemoved:
			fmt.Fprintf(&b, "- removed %s:\n%s\n", d.ElementKind, indent(clip(deref(d.OldContent))))
		case diff.ChangeModified:
			similarity := 0.0
			if d.Details != nil {
				similarity = d.Details.Similarity
			}
			fmt.Fprintf(&b, "~ modified %s (%.0f%% similar):\n  old:\n%s\n  new:\n%s\n",
				d.ElementKind, similarity*100,
				indent(clip(deref(d.OldContent))),
				indent(clip(deref(d.NewContent))))
		}
	}
	if result.Summary().TotalChanges > 0 {
		if len(result.AddedVariables) > 0 {
			fmt.Fprintf(&b, "variables added: %s\n", strings.Join(result.AddedVariables, ", "))
		}
		if len(result.RemovedVariables) > 0 {
			fmt.Fprintf(&b, "variables removed: %s\n", strings.Join(result.RemovedVariables, ", "))
		}
	}
	return strings.TrimSpace(b.String())
}

func clip(content string) string {
	lines := strings.Split(content, "\n")
	if len(lines) <= maxContentLines {
		return content
	}
	return strings.Join(lines[:maxContentLines], "\n") +
		fmt.Sprintf("\n... (%d more lines)", len(lines)-maxContentLines)
}

func indent(content string) string {
	lines := strings.Split(content, "\n")
	for i := range lines {
		lines[i] = "    " + lines[i]
	}
	return strings.Join(lines, "\n")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
