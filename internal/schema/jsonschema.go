package schema

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/qri-io/jsonschema"

	"restmapper/internal/descriptor"
)

// MetaSchema is the JSON Schema dialect written by JSONSchema.
const MetaSchema = "https://json-schema.org/draft/2019-09/schema"

// JSONSchema renders the schema as a JSON Schema document describing the
// records the remote API returns for the object.
func (s *Schema) JSONSchema() ([]byte, error) {
	doc := s.document()
	doc["$schema"] = MetaSchema
	doc["title"] = s.Object

	return json.MarshalIndent(doc, "", "  ")
}

func (s *Schema) document() map[string]any {
	props := make(map[string]any, len(s.Fields))

	for i := range s.Fields {
		props[s.Fields[i].Name] = s.Fields[i].document()
	}

	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": true,
	}
}

func (f *Field) document() map[string]any {
	var doc map[string]any

	switch {
	case f.IsArray():
		var items map[string]any
		if f.Nested != nil {
			items = f.Nested.document()
		} else {
			items = primitiveDocument(f.Elem)
		}

		items["type"] = nullable(items["type"].(string))
		doc = map[string]any{"type": "array", "items": items}
	case f.Nested != nil:
		doc = f.Nested.document()
	default:
		doc = primitiveDocument(f.Type)
	}

	if f.Nullable {
		doc["type"] = nullable(doc["type"].(string))
	}

	if f.Label != "" && f.Label != f.Name {
		doc["title"] = f.Label
	}

	if !f.Writable {
		doc["readOnly"] = true
	}

	return doc
}

func primitiveDocument(t descriptor.SemanticType) map[string]any {
	switch t {
	case descriptor.TypeBoolean:
		return map[string]any{"type": "boolean"}
	case descriptor.TypeInt:
		return map[string]any{"type": "integer", "minimum": -1 << 31, "maximum": 1<<31 - 1}
	case descriptor.TypeLong:
		return map[string]any{"type": "integer"}
	case descriptor.TypeDouble:
		return map[string]any{"type": "number"}
	case descriptor.TypeBytes:
		return map[string]any{"type": "string", "contentEncoding": "base64"}
	case descriptor.TypeTimestamp:
		return map[string]any{"type": "string", "format": "date-time"}
	default:
		return map[string]any{"type": "string"}
	}
}

func nullable(t string) []string {
	return []string{t, "null"}
}

// ValidationError lists the problems found in a document.
type ValidationError struct {
	Object   string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Object, strings.Join(e.Problems, "; "))
}

// Validator checks raw JSON documents against a schema. It checks
// shape and JSON types only; string encodings of numbers or booleans are
// rejected here even where the converter would coerce them.
type Validator struct {
	object string
	rs     *jsonschema.Schema
}

// Validator compiles the schema into a Validator.
func (s *Schema) Validator() (*Validator, error) {
	raw, err := json.Marshal(s.document())
	if err != nil {
		return nil, err
	}

	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(raw, rs); err != nil {
		return nil, fmt.Errorf("schema: compiling %s: %w", s.Object, err)
	}

	return &Validator{object: s.Object, rs: rs}, nil
}

// ValidateBytes validates one JSON document. It returns a
// *ValidationError when the document does not conform.
func (v *Validator) ValidateBytes(ctx context.Context, raw []byte) error {
	errs, err := v.rs.ValidateBytes(ctx, raw)
	if err != nil {
		return fmt.Errorf("schema: validating %s: %w", v.object, err)
	}

	if len(errs) == 0 {
		return nil
	}

	problems := make([]string, len(errs))
	for i := range errs {
		problems[i] = errs[i].Error()
	}

	return &ValidationError{Object: v.object, Problems: problems}
}
