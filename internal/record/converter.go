package record

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"restmapper/internal/coerce"
	"restmapper/internal/descriptor"
	"restmapper/internal/schema"
)

// Converter converts between raw JSON and records. It holds no state
// besides its options and is safe for concurrent use.
type Converter struct {
	coercion coerce.Category
}

// Option configures a Converter.
type Option func(*Converter)

// WithCoercion sets the accepted scalar representations.
func WithCoercion(c coerce.Category) Option {
	return func(conv *Converter) { conv.coercion = c }
}

// NewConverter creates a converter using coerce.CategoryDefault unless
// overridden.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{coercion: coerce.CategoryDefault}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Coercion returns the accepted scalar representations.
func (c *Converter) Coercion() coerce.Category {
	return c.coercion
}

// FromJSON converts one JSON object into a record of s.
func (c *Converter) FromJSON(raw []byte, s *schema.Schema) (*Record, error) {
	if !gjson.ValidBytes(raw) {
		return nil, &ShapeMismatchError{Object: s.Object, Expected: "object", Got: "invalid JSON"}
	}

	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil, &ShapeMismatchError{Object: s.Object, Expected: "object", Got: jsonKind(root)}
	}

	return c.object(root, s, "")
}

// FromValue converts an already decoded JSON object.
func (c *Converter) FromValue(v map[string]any, s *schema.Schema) (*Record, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("record: encoding %s value: %w", s.Object, err)
	}

	return c.FromJSON(raw, s)
}

// FromJSONArray converts a JSON array of objects, one record per
// element. Elements that fail leave a nil record in their slot; their
// errors are joined and returned alongside the converted records.
func (c *Converter) FromJSONArray(raw []byte, s *schema.Schema) ([]*Record, error) {
	if !gjson.ValidBytes(raw) {
		return nil, &ShapeMismatchError{Object: s.Object, Expected: "array", Got: "invalid JSON"}
	}

	root := gjson.ParseBytes(raw)
	if !root.IsArray() {
		return nil, &ShapeMismatchError{Object: s.Object, Expected: "array", Got: jsonKind(root)}
	}

	elems := root.Array()
	recs := make([]*Record, len(elems))

	var errs []error

	for i, elem := range elems {
		if !elem.IsObject() {
			errs = append(errs, fmt.Errorf("record %d: %w", i,
				&ShapeMismatchError{Object: s.Object, Expected: "object", Got: jsonKind(elem)}))

			continue
		}

		rec, err := c.object(elem, s, "")
		if err != nil {
			log.Debugf("record: %s[%d] skipped: %v", s.Object, i, err)
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))

			continue
		}

		recs[i] = rec
	}

	return recs, errors.Join(errs...)
}

func (c *Converter) object(v gjson.Result, s *schema.Schema, path string) (*Record, error) {
	members := make(map[string]gjson.Result, s.Len())

	v.ForEach(func(key, value gjson.Result) bool {
		members[key.String()] = value
		return true
	})

	rec := New(s)

	for i := range s.Fields {
		f := &s.Fields[i]

		value, ok := members[f.Name]
		if !ok || value.Type == gjson.Null {
			continue
		}

		out, err := c.field(value, s.Object, f, joinPath(path, f.Name))
		if err != nil {
			return nil, err
		}

		rec.values[i] = out
	}

	return rec, nil
}

func (c *Converter) field(v gjson.Result, object string, f *schema.Field, path string) (any, error) {
	switch {
	case f.IsArray():
		if !v.IsArray() {
			return nil, &ShapeMismatchError{Object: object, Field: f.Name, Path: path, Expected: "array", Got: jsonKind(v)}
		}

		elems := v.Array()
		out := make([]any, len(elems))

		for i, elem := range elems {
			if elem.Type == gjson.Null {
				continue
			}

			elemPath := fmt.Sprintf("%s[%d]", path, i)

			var err error
			if f.Nested != nil {
				out[i], err = c.nested(elem, object, f, elemPath)
			} else {
				out[i], err = c.scalar(elem, object, f.Name, f.Elem, elemPath)
			}

			if err != nil {
				return nil, err
			}
		}

		return out, nil

	case f.Nested != nil:
		return c.nested(v, object, f, path)

	default:
		return c.scalar(v, object, f.Name, f.Type, path)
	}
}

func (c *Converter) nested(v gjson.Result, object string, f *schema.Field, path string) (*Record, error) {
	if !v.IsObject() {
		return nil, &ShapeMismatchError{Object: object, Field: f.Name, Path: path, Expected: "object", Got: jsonKind(v)}
	}

	return c.object(v, f.Nested, path)
}

func (c *Converter) scalar(v gjson.Result, object, field string, t descriptor.SemanticType, path string) (any, error) {
	var in coerce.Value

	switch v.Type {
	case gjson.True:
		in = coerce.Bool(true)
	case gjson.False:
		in = coerce.Bool(false)
	case gjson.Number:
		in = coerce.Number(v.Raw)
	case gjson.String:
		in = coerce.String(v.Str)
	default:
		return nil, &ShapeMismatchError{Object: object, Field: field, Path: path, Expected: t.String(), Got: jsonKind(v)}
	}

	out, err := c.coercion.To(in, t)
	if err != nil {
		return nil, &TypeCoercionError{Object: object, Field: field, Path: path, Expected: t, Value: in.String(), Err: err}
	}

	return out, nil
}

// ToJSON renders rec as an update payload for s. Fields that are not
// writable are dropped. Nil values are omitted unless their path is
// listed in fieldsToNull, in which case they are sent as JSON null.
// Nested paths are dotted, e.g. "initialTerm.startDate". Elements of
// arrays are not addressable; nil fields inside them are omitted.
func (c *Converter) ToJSON(rec *Record, s *schema.Schema, fieldsToNull ...string) ([]byte, error) {
	if rec == nil {
		return nil, errors.New("record: nil record")
	}

	if rec.schema.Object != s.Object {
		return nil, &ShapeMismatchError{Object: s.Object, Expected: s.Object + " record", Got: rec.schema.Object + " record"}
	}

	e := &encoder{payload: true, nulls: make(map[string]struct{}, len(fieldsToNull))}
	for _, name := range fieldsToNull {
		e.nulls[name] = struct{}{}
	}

	if err := e.object(rec, s, "", true); err != nil {
		return nil, err
	}

	return e.buf.Bytes(), nil
}

func jsonKind(v gjson.Result) string {
	switch v.Type {
	case gjson.Null:
		return "null"
	case gjson.True, gjson.False:
		return "boolean"
	case gjson.Number:
		return "number"
	case gjson.String:
		return "string"
	default:
		if v.IsArray() {
			return "array"
		}

		return "object"
	}
}
