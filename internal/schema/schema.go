// Package schema validates normalized documents against the canonical record
// schema. The schema is embedded and compiled once per worker lifetime.
package schema

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed record_schema.json
var recordSchema []byte

const schemaURL = "record_schema.json"

// Validator checks normalized documents against the record schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(recordSchema))
	if err != nil {
		return nil, fmt.Errorf("decode record schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add record schema: %w", err)
	}

	s, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile record schema: %w", err)
	}
	return &Validator{schema: s}, nil
}

// Validate reports a validation error for a document that does not conform
// to the record schema.
func (v *Validator) Validate(doc map[string]any) error {
	if err := v.schema.Validate(normalizeInstance(doc)); err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	return nil
}

// normalizeInstance converts the document to the generic shape the validator
// expects (slices of any, not of concrete map types).
func normalizeInstance(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeInstance(val)
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeInstance(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeInstance(val)
		}
		return out
	default:
		return v
	}
}
