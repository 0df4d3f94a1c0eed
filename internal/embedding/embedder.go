// Package embedding turns normalized documents into text and vectors. The
// model itself is external; this package batches the calls and validates the
// returned dimensions.
package embedding

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// Providers for the embedding backend.
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// Embedder produces embedding vectors for batches of texts.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Model() string
	Dimension() int
}

// Config selects and parametrizes the embedding backend.
type Config struct {
	Provider  string
	Model     string
	Dimension int
	// Ollama
	ServerURL string
	// OpenAI
	APIKey string
}

// Client implements Embedder on top of langchaingo embeddings.
type Client struct {
	model     embeddings.Embedder
	modelName string
	dimension int
}

var _ Embedder = (*Client)(nil)

// New creates an embedding client for the configured provider.
func New(cfg Config) (*Client, error) {
	var model embeddings.Embedder

	switch cfg.Provider {
	case ProviderOllama, "":
		llm, err := ollama.New(
			ollama.WithModel(cfg.Model),
			ollama.WithServerURL(cfg.ServerURL),
		)
		if err != nil {
			return nil, fmt.Errorf("create ollama client: %w", err)
		}
		model, err = embeddings.NewEmbedder(llm)
		if err != nil {
			return nil, fmt.Errorf("create ollama embedder: %w", err)
		}

	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		llm, err := openai.New(
			openai.WithToken(cfg.APIKey),
			openai.WithEmbeddingModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("create openai client: %w", err)
		}
		model, err = embeddings.NewEmbedder(llm)
		if err != nil {
			return nil, fmt.Errorf("create openai embedder: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}

	return &Client{
		model:     model,
		modelName: cfg.Model,
		dimension: cfg.Dimension,
	}, nil
}

// EmbedBatch embeds all texts in one model call, preserving input order.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors, err := c.model.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed batch: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: got %d, want %d", len(vectors), len(texts))
	}
	for i, v := range vectors {
		if len(v) != c.dimension {
			return nil, fmt.Errorf("embedding %d dimension mismatch: got %d, want %d", i, len(v), c.dimension)
		}
	}
	return vectors, nil
}

// Model returns the embedding model name.
func (c *Client) Model() string {
	return c.modelName
}

// Dimension returns the configured vector dimension.
func (c *Client) Dimension() int {
	return c.dimension
}
