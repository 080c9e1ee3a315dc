package record

import (
	"bytes"
	"encoding/json"

	"restmapper/internal/schema"
)

// encoder writes records as JSON objects in schema order. In payload
// mode it drops fields that are not writable and emits nil values only
// for paths listed in nulls. Fields inside array elements have no path,
// so their nil values are always omitted.
type encoder struct {
	buf     bytes.Buffer
	enc     *json.Encoder
	payload bool
	nulls   map[string]struct{}
}

func (e *encoder) object(rec *Record, s *schema.Schema, path string, addressable bool) error {
	e.buf.WriteByte('{')

	first := true

	for i := range s.Fields {
		f := &s.Fields[i]
		if e.payload && !f.Writable {
			continue
		}

		fieldPath := joinPath(path, f.Name)

		v, _ := rec.Get(f.Name)
		if v == nil && e.payload {
			if _, ok := e.nulls[fieldPath]; !ok || !addressable {
				continue
			}
		}

		if !first {
			e.buf.WriteByte(',')
		}

		first = false

		if err := e.scalar(f.Name); err != nil {
			return err
		}

		e.buf.WriteByte(':')

		if err := e.value(f, v, fieldPath, addressable); err != nil {
			return err
		}
	}

	e.buf.WriteByte('}')

	return nil
}

func (e *encoder) value(f *schema.Field, v any, path string, addressable bool) error {
	switch x := v.(type) {
	case nil:
		e.buf.WriteString("null")
		return nil

	case *Record:
		return e.object(x, nestedSchema(f, x), path, addressable)

	case []any:
		e.buf.WriteByte('[')

		for i, elem := range x {
			if i > 0 {
				e.buf.WriteByte(',')
			}

			var err error

			switch el := elem.(type) {
			case nil:
				e.buf.WriteString("null")
			case *Record:
				err = e.object(el, nestedSchema(f, el), path, false)
			default:
				err = e.scalar(el)
			}

			if err != nil {
				return err
			}
		}

		e.buf.WriteByte(']')

		return nil

	default:
		return e.scalar(v)
	}
}

// scalar appends one JSON value without the encoder's trailing newline.
func (e *encoder) scalar(v any) error {
	if e.enc == nil {
		e.enc = json.NewEncoder(&e.buf)
		e.enc.SetEscapeHTML(false)
	}

	if err := e.enc.Encode(v); err != nil {
		return err
	}

	e.buf.Truncate(e.buf.Len() - 1)

	return nil
}

func nestedSchema(f *schema.Field, rec *Record) *schema.Schema {
	if f.Nested != nil {
		return f.Nested
	}

	return rec.schema
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}

	return parent + "." + name
}
