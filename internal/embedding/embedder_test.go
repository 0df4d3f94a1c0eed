package embedding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubModel returns canned vectors in input order.
type stubModel struct {
	vectors [][]float32
	err     error
}

func (m *stubModel) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.vectors[:len(texts)], nil
}

func (m *stubModel) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	out, err := m.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

func TestClient_EmbedBatch(t *testing.T) {
	c := &Client{
		model:     &stubModel{vectors: [][]float32{{0.1, 0.2}, {0.3, 0.4}}},
		modelName: "all-minilm",
		dimension: 2,
	}

	vectors, err := c.EmbedBatch(context.Background(), []string{"first", "second"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{0.1, 0.2}, {0.3, 0.4}}, vectors)
}

func TestClient_EmbedBatch_Empty(t *testing.T) {
	c := &Client{model: &stubModel{}, dimension: 2}

	vectors, err := c.EmbedBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, vectors)
}

func TestClient_EmbedBatch_DimensionMismatch(t *testing.T) {
	c := &Client{
		model:     &stubModel{vectors: [][]float32{{0.1, 0.2, 0.3}}},
		dimension: 2,
	}

	_, err := c.EmbedBatch(context.Background(), []string{"first"})
	assert.ErrorContains(t, err, "dimension mismatch")
}

func TestClient_EmbedBatch_ModelError(t *testing.T) {
	c := &Client{
		model:     &stubModel{err: errors.New("connection refused")},
		dimension: 2,
	}

	_, err := c.EmbedBatch(context.Background(), []string{"first"})
	assert.ErrorContains(t, err, "embed batch")
}

func TestNew_UnsupportedProvider(t *testing.T) {
	_, err := New(Config{Provider: "hand-rolled"})
	assert.Error(t, err)
}

func TestNew_OpenAIRequiresKey(t *testing.T) {
	_, err := New(Config{Provider: ProviderOpenAI, Model: "text-embedding-3-small"})
	assert.ErrorContains(t, err, "API key")
}
