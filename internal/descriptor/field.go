package descriptor

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyName           = errors.New("name is empty")
	ErrInvalidType         = errors.New("invalid semantic type")
	ErrMissingElemType     = errors.New("array field has no element type")
	ErrUnexpectedElemType  = errors.New("element type set on a non-array field")
	ErrNestedArray         = errors.New("arrays of arrays are not supported")
	ErrMissingNestedRef    = errors.New("nested field has no nested type reference")
	ErrUnexpectedNestedRef = errors.New("nested type reference set on a non-nested field")
	ErrDuplicateField      = errors.New("duplicate field")
)

// Field describes one field of one API object. The zero value is not
// usable; build fields with NewField.
type Field struct {
	wireName    string
	displayName string
	typ         SemanticType
	elem        SemanticType
	nested      string
	nullable    bool
	custom      bool
	writable    bool
	selectable  bool
}

// FieldOption customizes a Field during NewField.
type FieldOption func(*Field)

// WithDisplayName sets the human readable name. Defaults to the wire name.
func WithDisplayName(name string) FieldOption {
	return func(f *Field) { f.displayName = name }
}

// WithElem sets the element type of an array field.
func WithElem(t SemanticType) FieldOption {
	return func(f *Field) { f.elem = t }
}

// WithNested sets the name of the object a nested field (or the elements
// of an array-of-object field) conforms to.
func WithNested(object string) FieldOption {
	return func(f *Field) { f.nested = object }
}

// NotNull marks the field as never omitted by the remote API.
func NotNull() FieldOption {
	return func(f *Field) { f.nullable = false }
}

// AsCustom marks a tenant-defined field.
func AsCustom() FieldOption {
	return func(f *Field) { f.custom = true }
}

// Writable allows the field in create/update payloads.
func Writable() FieldOption {
	return func(f *Field) { f.writable = true }
}

// Selectable allows the field in select/filter requests.
func Selectable() FieldOption {
	return func(f *Field) { f.selectable = true }
}

// NewField validates and builds a field.
//
// A nested type reference is required for TypeNested fields and for
// TypeArray fields whose element type is TypeNested, and forbidden
// everywhere else.
func NewField(wireName string, typ SemanticType, opts ...FieldOption) (Field, error) {
	f := Field{
		wireName: wireName,
		typ:      typ,
		nullable: true,
	}

	for _, opt := range opts {
		opt(&f)
	}

	if err := f.validate(); err != nil {
		return Field{}, fmt.Errorf("field %q: %w", wireName, err)
	}

	return f, nil
}

// MustField is like NewField but panics on error. Meant for static tables.
func MustField(wireName string, typ SemanticType, opts ...FieldOption) Field {
	f, err := NewField(wireName, typ, opts...)
	if err != nil {
		panic(err)
	}

	return f
}

func (f *Field) validate() error {
	if f.wireName == "" {
		return ErrEmptyName
	}

	if !f.typ.IsValid() {
		return ErrInvalidType
	}

	switch f.typ {
	case TypeArray:
		if f.elem == TypeInvalid {
			return ErrMissingElemType
		}

		if f.elem == TypeArray {
			return ErrNestedArray
		}

		if !f.elem.IsValid() {
			return ErrInvalidType
		}
	default:
		if f.elem != TypeInvalid {
			return ErrUnexpectedElemType
		}
	}

	switch {
	case f.needsNested() && f.nested == "":
		return ErrMissingNestedRef
	case !f.needsNested() && f.nested != "":
		return ErrUnexpectedNestedRef
	}

	return nil
}

func (f *Field) needsNested() bool {
	return f.typ == TypeNested || (f.typ == TypeArray && f.elem == TypeNested)
}

// WireName is the JSON key of the field.
func (f Field) WireName() string { return f.wireName }

// DisplayName is the human readable name, the wire name when unset.
func (f Field) DisplayName() string {
	if f.displayName == "" {
		return f.wireName
	}

	return f.displayName
}

func (f Field) Type() SemanticType { return f.typ }

// Elem is the element type of an array field, TypeInvalid otherwise.
func (f Field) Elem() SemanticType { return f.elem }

// NestedRef is the referenced object name, empty for fields without one.
func (f Field) NestedRef() string { return f.nested }

// HasNestedRef reports whether the field embeds another object, either
// directly or as array elements.
func (f Field) HasNestedRef() bool { return f.needsNested() }

func (f Field) Nullable() bool   { return f.nullable }
func (f Field) Custom() bool     { return f.custom }
func (f Field) Writable() bool   { return f.writable }
func (f Field) Selectable() bool { return f.selectable }

// TypeString renders the compact catalog notation, e.g. "array|OrderItem".
func (f Field) TypeString() string {
	switch {
	case f.typ == TypeArray && f.elem == TypeNested:
		return "array|" + f.nested
	case f.typ == TypeArray:
		return "array|" + f.elem.String()
	case f.typ == TypeNested:
		return "object|" + f.nested
	default:
		return f.typ.String()
	}
}
