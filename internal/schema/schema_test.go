package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDoc() map[string]any {
	return map[string]any{
		"doi":    "10.1234/abc",
		"titles": []map[string]any{{"title": "A dataset"}},
	}
}

func TestValidator_ValidDocuments(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	assert.NoError(t, v.Validate(validDoc()))

	full := map[string]any{
		"url":    "https://hal.science/hal-01",
		"titles": []map[string]any{{"title": "t", "lang": "en", "titleType": "Subtitle"}},
		"subjects": []map[string]any{
			{"subject": "hydrology", "subjectScheme": "DDC", "schemaUri": "https://dewey.info"},
		},
		"creators": []map[string]any{
			{"creatorName": "Doe, Jane", "givenName": "Jane", "familyName": "Doe"},
		},
		"descriptions":    []map[string]any{{"description": "abstract", "descriptionType": "Abstract"}},
		"dates":           []map[string]any{{"date": "2025-04-01", "dateType": "Issued"}},
		"publicationYear": "2025",
		"resourceType":    map[string]any{"resourceTypeGeneral": "Dataset"},
	}
	assert.NoError(t, v.Validate(full))
}

func TestValidator_RequiresTitles(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	doc := validDoc()
	delete(doc, "titles")
	assert.Error(t, v.Validate(doc))

	doc = validDoc()
	doc["titles"] = []map[string]any{}
	assert.Error(t, v.Validate(doc))
}

func TestValidator_RequiresDOIOrURL(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	doc := map[string]any{
		"titles": []map[string]any{{"title": "t"}},
	}
	assert.Error(t, v.Validate(doc))

	doc["url"] = "https://example.org/r/1"
	assert.NoError(t, v.Validate(doc))
}

func TestValidator_RejectsUnnormalizedDate(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	doc := validDoc()
	doc["dates"] = []map[string]any{{"date": "2025", "dateType": "Issued"}}
	assert.Error(t, v.Validate(doc))
}

func TestValidator_RejectsUnknownProperties(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	doc := validDoc()
	doc["rights"] = "CC-BY"
	assert.Error(t, v.Validate(doc))
}
