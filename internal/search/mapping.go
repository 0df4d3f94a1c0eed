package search

// recordMapping is the index mapping for normalized records. The embedding
// dimension varies with the configured model and is set at index creation.
func recordMapping(embeddingDims int) map[string]any {
	textWithKeyword := func() map[string]any {
		return map[string]any{
			"type": "text",
			"fields": map[string]any{
				"keyword": map[string]any{"type": "keyword", "ignore_above": 256},
			},
		}
	}

	return map[string]any{
		"mappings": map[string]any{
			"properties": map[string]any{
				"doi": map[string]any{"type": "keyword"},
				"url": map[string]any{"type": "keyword"},
				"titles": map[string]any{
					"properties": map[string]any{
						"title":     textWithKeyword(),
						"titleType": map[string]any{"type": "keyword"},
						"lang":      map[string]any{"type": "keyword"},
					},
				},
				"subjects": map[string]any{
					"properties": map[string]any{
						"subject":            textWithKeyword(),
						"subjectScheme":      map[string]any{"type": "keyword"},
						"schemaUri":          map[string]any{"type": "keyword"},
						"valueUri":           map[string]any{"type": "keyword"},
						"classificationCode": map[string]any{"type": "keyword"},
						"lang":               map[string]any{"type": "keyword"},
					},
				},
				"creators": map[string]any{
					"properties": map[string]any{
						"creatorName":          textWithKeyword(),
						"nameType":             map[string]any{"type": "keyword"},
						"givenName":            map[string]any{"type": "text"},
						"familyName":           map[string]any{"type": "text"},
						"nameIdentifier":       map[string]any{"type": "keyword"},
						"nameIdentifierScheme": map[string]any{"type": "keyword"},
					},
				},
				"descriptions": map[string]any{
					"properties": map[string]any{
						"description":     map[string]any{"type": "text"},
						"descriptionType": map[string]any{"type": "keyword"},
						"lang":            map[string]any{"type": "keyword"},
					},
				},
				"dates": map[string]any{
					"properties": map[string]any{
						"date":     map[string]any{"type": "date"},
						"dateType": map[string]any{"type": "keyword"},
					},
				},
				"publicationYear": map[string]any{"type": "keyword"},
				"resourceType": map[string]any{
					"properties": map[string]any{
						"resourceType":        textWithKeyword(),
						"resourceTypeGeneral": map[string]any{"type": "keyword"},
					},
				},
				"emb": map[string]any{
					"type":       "dense_vector",
					"dims":       embeddingDims,
					"index":      true,
					"similarity": "cosine",
				},
			},
		},
	}
}
