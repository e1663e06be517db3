// Package embeddings produces vector embeddings for prompt templates
// through an Ollama-served model.
package embeddings

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms/ollama"
)

// Client embeds template text with a configured Ollama model.
type Client struct {
	model string
	llm   *ollama.LLM
	to    time.Duration
}

// NewClient builds an embedding client. An empty baseURL keeps the
// Ollama default endpoint.
func NewClient(baseURL, model string, timeout time.Duration) (*Client, error) {
	opts := []ollama.Option{
		ollama.WithModel(model),
		ollama.WithHTTPClient(&http.Client{Timeout: 30 * time.Second}),
	}
	if trimmed := strings.TrimSpace(baseURL); trimmed != "" {
		opts = append(opts, ollama.WithServerURL(trimmed))
	}

	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create ollama client: %w", err)
	}
	return &Client{model: model, llm: llm, to: timeout}, nil
}

// Model reports the embedding model name.
func (c *Client) Model() string { return c.model }

// EmbedText embeds a single template body.
func (c *Client) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedTexts embeds a batch of inputs in one call.
func (c *Client) EmbedTexts(ctx context.Context, inputs []string) ([][]float32, error) {
	if len(inputs) == 0 {
		return nil, errors.New("no inputs provided for embedding")
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	vectors, err := c.llm.CreateEmbedding(ctx, inputs)
	if err != nil {
		return nil, fmt.Errorf("create embedding: %w", c.annotateError(err))
	}
	if len(vectors) != len(inputs) {
		return nil, fmt.Errorf("embedding count mismatch: got %d for %d inputs", len(vectors), len(inputs))
	}
	return vectors, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.to <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.to)
}

func (c *Client) annotateError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("embedding call timed out after %s: %w", c.to, err)
	}
	return err
}
