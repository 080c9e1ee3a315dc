package schema

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"restmapper/internal/descriptor"
	"restmapper/internal/diagnostic"
)

// Field is one resolved schema field.
type Field struct {
	// Name is the wire name (JSON key) of the field.
	Name string
	// Label is the human readable name.
	Label string
	// Type is the semantic type. Elem is the element type of arrays.
	Type descriptor.SemanticType
	Elem descriptor.SemanticType
	// Nested is the schema of nested objects and of array-of-object
	// elements, nil otherwise.
	Nested *Schema
	// Nullable is always true for derived schemas.
	Nullable   bool
	Writable   bool
	Selectable bool
	Custom     bool
}

// IsArray reports whether the field holds a sequence.
func (f *Field) IsArray() bool {
	return f.Type == descriptor.TypeArray
}

// IsNested reports whether the field (or its elements) is an object.
func (f *Field) IsNested() bool {
	return f.Nested != nil
}

// TypeString renders the type like the catalog notation.
func (f *Field) TypeString() string {
	switch {
	case f.IsArray() && f.Nested != nil:
		return "array|" + f.Nested.Object
	case f.IsArray():
		return "array|" + f.Elem.String()
	case f.Nested != nil:
		return "object|" + f.Nested.Object
	default:
		return f.Type.String()
	}
}

// Collision records a custom field dropped because its name was taken.
type Collision struct {
	Object     string                  `json:"object"`
	Field      string                  `json:"field"`
	Declared   descriptor.SemanticType `json:"declared"`
	Discovered descriptor.SemanticType `json:"discovered"`
	// Duplicate is set when the name was taken by an earlier custom field
	// rather than by a declared one.
	Duplicate bool `json:"duplicate,omitempty"`
}

// Schema is the ordered field list of one object.
type Schema struct {
	Object     string
	Fields     []Field
	Collisions []Collision

	// CustomSuffix is the object's tenant field suffix. When set, only
	// custom fields whose names end in it are added; the others are kept
	// in Filtered.
	CustomSuffix string
	Filtered     []CustomField

	index map[string]int
}

func newSchema(object string, size int) *Schema {
	return &Schema{
		Object: object,
		Fields: make([]Field, 0, size),
		index:  make(map[string]int, size),
	}
}

func (s *Schema) add(f Field) {
	s.index[f.Name] = len(s.Fields)
	s.Fields = append(s.Fields, f)
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	return len(s.Fields)
}

// Field looks up a field by wire name.
func (s *Schema) Field(name string) (*Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}

	return &s.Fields[i], true
}

// Index returns the position of a field, or -1.
func (s *Schema) Index(name string) int {
	i, ok := s.index[name]
	if !ok {
		return -1
	}

	return i
}

// Names returns the field names in schema order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.Fields))
	for i := range s.Fields {
		names[i] = s.Fields[i].Name
	}

	return names
}

// WritableNames returns the names of fields allowed in update payloads.
func (s *Schema) WritableNames() []string {
	var names []string

	for i := range s.Fields {
		if s.Fields[i].Writable {
			names = append(names, s.Fields[i].Name)
		}
	}

	return names
}

// Diagnostics turns the recorded collisions into warnings and the
// filtered custom fields into infos.
func (s *Schema) Diagnostics() *diagnostic.Diagnostics {
	d := &diagnostic.Diagnostics{}

	for _, c := range s.Filtered {
		d.AddInfo("custom_field_filtered",
			fmt.Sprintf("custom field (%s) ignored, name does not end in %q", c.Type, s.CustomSuffix),
			s.Object, c.Name)
	}

	for _, c := range s.Collisions {
		if c.Duplicate {
			d.AddWarning("custom_field_duplicate",
				fmt.Sprintf("custom field listed twice, keeping the first (%s)", c.Declared), c.Object, c.Field)

			continue
		}

		d.AddWarning("custom_field_shadowed",
			fmt.Sprintf("custom field (%s) ignored, declared field (%s) takes precedence", c.Discovered, c.Declared),
			c.Object, c.Field)
	}

	return d
}

// Format writes an indented tree of the schema, one field per line.
func (s *Schema) Format(w io.Writer) error {
	return s.format(w, 0)
}

func (s *Schema) format(w io.Writer, depth int) error {
	indent := strings.Repeat("  ", depth)

	for i := range s.Fields {
		f := &s.Fields[i]

		var flags []string
		if f.Writable {
			flags = append(flags, "update")
		}

		if f.Selectable {
			flags = append(flags, "select")
		}

		if f.Custom {
			flags = append(flags, "custom")
		}

		line := fmt.Sprintf("%s%s: %s", indent, f.Name, f.TypeString())
		if len(flags) > 0 {
			line += " [" + strings.Join(flags, ",") + "]"
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}

		if f.Nested != nil {
			if err := f.Nested.format(w, depth+1); err != nil {
				return err
			}
		}
	}

	return nil
}

// Dump writes a full debug representation of the schema.
func (s *Schema) Dump(w io.Writer) {
	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
	cfg.Fdump(w, s)
}
