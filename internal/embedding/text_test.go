package embedding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextForEmbedding_FieldOrder(t *testing.T) {
	doc := map[string]any{
		"descriptions": []map[string]any{{"description": "a long abstract"}},
		"titles":       []map[string]any{{"title": "Soil moisture"}, {"title": "Bodemvocht"}},
		"subjects":     []map[string]any{{"subject": "hydrology"}},
	}

	got := TextForEmbedding(doc)
	assert.Equal(t, "Soil moisture Bodemvocht hydrology a long abstract", got)
}

func TestTextForEmbedding_MissingFields(t *testing.T) {
	assert.Equal(t, "", TextForEmbedding(map[string]any{}))

	doc := map[string]any{
		"titles": []map[string]any{{"title": "only title"}},
	}
	assert.Equal(t, "only title", TextForEmbedding(doc))
}

func TestTextForEmbedding_GenericSlices(t *testing.T) {
	// documents round-tripped through JSON carry []any, not []map[string]any
	doc := map[string]any{
		"titles":   []any{map[string]any{"title": "decoded"}},
		"subjects": []any{map[string]any{"subjectScheme": "DDC"}, "not an object"},
	}
	assert.Equal(t, "decoded", TextForEmbedding(doc))
}

func TestTextForEmbedding_SkipsObjectsWithoutText(t *testing.T) {
	doc := map[string]any{
		"titles":       []map[string]any{{"title": "t"}},
		"descriptions": []map[string]any{{"descriptionType": "Abstract"}},
	}
	assert.Equal(t, "t", TextForEmbedding(doc))
}
