package record

import (
	"fmt"
	"math"
	"time"

	"restmapper/internal/coerce"
	"restmapper/internal/descriptor"
	"restmapper/internal/schema"
)

// Record is one converted API object. Values are aligned with the
// schema's fields; nil means the field was absent or null.
//
// Value types: BOOLEAN bool, INT int32, LONG int64, DOUBLE float64,
// STRING string, BYTES []byte, TIMESTAMP time.Time in UTC, nested
// objects *Record and arrays []any.
type Record struct {
	schema *schema.Schema
	values []any
}

// New returns an empty record for s.
func New(s *schema.Schema) *Record {
	return &Record{
		schema: s,
		values: make([]any, s.Len()),
	}
}

// Schema returns the schema the record conforms to.
func (r *Record) Schema() *schema.Schema {
	return r.schema
}

// Names returns the schema field names in order.
func (r *Record) Names() []string {
	return r.schema.Names()
}

// Get returns the value of a field. ok is false when the field is
// unknown or holds no value.
func (r *Record) Get(name string) (any, bool) {
	i := r.schema.Index(name)
	if i < 0 || r.values[i] == nil {
		return nil, false
	}

	return r.values[i], true
}

// IsNull reports whether the field holds no value.
func (r *Record) IsNull(name string) bool {
	_, ok := r.Get(name)
	return !ok
}

// Set stores v under name. Go numeric types are converted to the
// field's representation when the value fits; nil clears the field.
func (r *Record) Set(name string, v any) error {
	i := r.schema.Index(name)
	if i < 0 {
		return &UnknownFieldError{Object: r.schema.Object, Field: name}
	}

	if v == nil {
		r.values[i] = nil
		return nil
	}

	f := &r.schema.Fields[i]

	nv, err := normalize(r.schema.Object, f, v)
	if err != nil {
		return err
	}

	r.values[i] = nv

	return nil
}

func normalize(object string, f *schema.Field, v any) (any, error) {
	switch {
	case f.IsArray():
		list, ok := v.([]any)
		if !ok {
			return nil, &ShapeMismatchError{Object: object, Field: f.Name, Path: f.Name, Expected: "array", Got: fmt.Sprintf("%T", v)}
		}

		out := make([]any, len(list))

		for i, elem := range list {
			if elem == nil {
				continue
			}

			var err error
			if f.Nested != nil {
				out[i], err = nestedValue(object, f, elem)
			} else {
				out[i], err = scalarValue(object, f.Name, f.Elem, elem)
			}

			if err != nil {
				return nil, err
			}
		}

		return out, nil

	case f.Nested != nil:
		return nestedValue(object, f, v)

	default:
		return scalarValue(object, f.Name, f.Type, v)
	}
}

func nestedValue(object string, f *schema.Field, v any) (any, error) {
	rec, ok := v.(*Record)
	if !ok || rec == nil {
		return nil, &ShapeMismatchError{Object: object, Field: f.Name, Path: f.Name, Expected: "object", Got: fmt.Sprintf("%T", v)}
	}

	if rec.schema.Object != f.Nested.Object {
		return nil, &ShapeMismatchError{Object: object, Field: f.Name, Path: f.Name,
			Expected: f.Nested.Object + " record", Got: rec.schema.Object + " record"}
	}

	return rec, nil
}

func scalarValue(object, field string, t descriptor.SemanticType, v any) (any, error) {
	fail := func() error {
		return &TypeCoercionError{
			Object:   object,
			Field:    field,
			Path:     field,
			Expected: t,
			Value:    fmt.Sprintf("%T(%v)", v, v),
			Err:      coerce.ErrNotCoercible,
		}
	}

	switch t {
	case descriptor.TypeBoolean:
		if b, ok := v.(bool); ok {
			return b, nil
		}

	case descriptor.TypeInt:
		if n, ok := integer(v); ok && n >= math.MinInt32 && n <= math.MaxInt32 {
			return int32(n), nil
		}

	case descriptor.TypeLong:
		if n, ok := integer(v); ok {
			return n, nil
		}

	case descriptor.TypeDouble:
		switch x := v.(type) {
		case float64:
			return x, nil
		case float32:
			return float64(x), nil
		}

		if n, ok := integer(v); ok {
			return float64(n), nil
		}

	case descriptor.TypeString:
		if s, ok := v.(string); ok {
			return s, nil
		}

	case descriptor.TypeBytes:
		if b, ok := v.([]byte); ok {
			return b, nil
		}

	case descriptor.TypeTimestamp:
		if ts, ok := v.(time.Time); ok {
			return ts.UTC(), nil
		}
	}

	return nil, fail()
}

func integer(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint:
		if uint64(x) > math.MaxInt64 {
			return 0, false
		}

		return int64(x), true
	case uint64:
		if x > math.MaxInt64 {
			return 0, false
		}

		return int64(x), true
	default:
		return 0, false
	}
}

// MarshalJSON renders every field in schema order, with null for
// missing values.
func (r *Record) MarshalJSON() ([]byte, error) {
	e := &encoder{}
	if err := e.object(r, r.schema, "", true); err != nil {
		return nil, err
	}

	return e.buf.Bytes(), nil
}
