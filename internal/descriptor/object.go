package descriptor

import (
	"fmt"
	"strings"
)

// Object describes one API object and its ordered fields.
type Object struct {
	name        string
	kind        ObjectKind
	description string
	related     []string
	suffix      string
	fields      []Field
	index       map[string]int
}

// ObjectOption customizes an Object during NewObject.
type ObjectOption func(*Object)

// WithDescription attaches free text documentation.
func WithDescription(text string) ObjectOption {
	return func(o *Object) { o.description = text }
}

// WithRelated lists objects that are documented as related. Informational
// only; nesting is expressed through field references.
func WithRelated(names ...string) ObjectOption {
	return func(o *Object) { o.related = append([]string(nil), names...) }
}

// WithCustomFieldSuffix sets the suffix the remote API appends to tenant
// field names of this object, such as "__NS" for integration fields.
func WithCustomFieldSuffix(suffix string) ObjectOption {
	return func(o *Object) { o.suffix = suffix }
}

// NewObject validates and builds an object. Field order is kept as given
// and becomes the schema field order.
func NewObject(name string, kind ObjectKind, fields []Field, opts ...ObjectOption) (*Object, error) {
	if name == "" {
		return nil, fmt.Errorf("object: %w", ErrEmptyName)
	}

	if kind != KindTopLevel && kind != KindNested {
		return nil, fmt.Errorf("object %q: unknown kind %d", name, kind)
	}

	o := &Object{
		name:   name,
		kind:   kind,
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}

	for _, opt := range opts {
		opt(o)
	}

	for _, f := range fields {
		if f.wireName == "" {
			return nil, fmt.Errorf("object %q: field: %w", name, ErrEmptyName)
		}

		if _, ok := o.index[f.wireName]; ok {
			return nil, fmt.Errorf("object %q: %w %q", name, ErrDuplicateField, f.wireName)
		}

		o.index[f.wireName] = len(o.fields)
		o.fields = append(o.fields, f)
	}

	return o, nil
}

func (o *Object) Name() string        { return o.name }
func (o *Object) Kind() ObjectKind    { return o.kind }
func (o *Object) Description() string { return o.description }
func (o *Object) IsTopLevel() bool    { return o.kind == KindTopLevel }

// CustomFieldSuffix returns the tenant field suffix, empty when tenant
// fields are not marked by name.
func (o *Object) CustomFieldSuffix() string { return o.suffix }

// IsCustomName reports whether name carries the tenant field suffix.
func (o *Object) IsCustomName(name string) bool {
	return o.suffix != "" && strings.HasSuffix(name, o.suffix) && len(name) > len(o.suffix)
}

// Related returns a copy of the related object names.
func (o *Object) Related() []string {
	return append([]string(nil), o.related...)
}

// Len returns the number of declared fields.
func (o *Object) Len() int { return len(o.fields) }

// Fields returns a copy of the declared fields in declaration order.
func (o *Object) Fields() []Field {
	return append([]Field(nil), o.fields...)
}

// FieldAt returns the i-th declared field.
func (o *Object) FieldAt(i int) Field { return o.fields[i] }

// Field looks up a declared field by wire name.
func (o *Object) Field(wireName string) (Field, bool) {
	i, ok := o.index[wireName]
	if !ok {
		return Field{}, false
	}

	return o.fields[i], true
}

// NestedRefs returns the distinct object names referenced by the fields,
// in field order.
func (o *Object) NestedRefs() []string {
	var refs []string

	seen := map[string]struct{}{}

	for _, f := range o.fields {
		if f.nested == "" {
			continue
		}

		if _, ok := seen[f.nested]; ok {
			continue
		}

		seen[f.nested] = struct{}{}
		refs = append(refs, f.nested)
	}

	return refs
}
