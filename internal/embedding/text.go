package embedding

import "strings"

// TextForEmbedding concatenates the title, subject and description texts of a
// normalized document, in that field order, values in source order, separated
// by single spaces.
func TextForEmbedding(doc map[string]any) string {
	parts := extractField(doc, "titles", "title")
	parts = append(parts, extractField(doc, "subjects", "subject")...)
	parts = append(parts, extractField(doc, "descriptions", "description")...)
	return strings.Join(parts, " ")
}

func extractField(doc map[string]any, fieldName, subfieldName string) []string {
	field, ok := doc[fieldName]
	if !ok {
		return nil
	}

	var out []string
	switch items := field.(type) {
	case []map[string]any:
		for _, item := range items {
			if s, ok := item[subfieldName].(string); ok {
				out = append(out, s)
			}
		}
	case []any:
		for _, raw := range items {
			if item, ok := raw.(map[string]any); ok {
				if s, ok := item[subfieldName].(string); ok {
					out = append(out, s)
				}
			}
		}
	}
	return out
}
