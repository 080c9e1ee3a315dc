package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"restmapper/internal/common"
	"restmapper/internal/descriptor"
)

// --- StringOrArray YAML methods ---

// UnmarshalYAML accepts either a single string or an array of strings.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		if err := node.Decode(&str); err != nil {
			return err
		}

		*s = StringOrArray(common.SplitList(str))

		return nil

	case yaml.SequenceNode:
		var arr []string

		if err := node.Decode(&arr); err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("line %d: expected string or array", node.Line)
	}
}

// MarshalYAML writes a single string if there is one element, otherwise
// an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if common.IsSingle(s) {
		return s[0], nil
	}

	return []string(s), nil
}

// Contains reports whether the list holds str.
func (s StringOrArray) Contains(str string) bool {
	return slices.Contains(s, str)
}

// --- TypeRef YAML methods ---

var (
	errMissingTypeArg    = errors.New("container type needs an argument")
	errUnexpectedTypeArg = errors.New("scalar type takes no argument")
)

// ParseTypeRef parses the catalog type notation: a scalar type name,
// "object|<Object>", "array|<Object>" or "array|<scalar>". An array
// argument naming a scalar type is an element type; anything else is an
// object name.
func ParseTypeRef(s string) (TypeRef, error) {
	base, arg, hasArg := strings.Cut(strings.TrimSpace(s), "|")
	arg = strings.TrimSpace(arg)

	t, err := descriptor.ParseSemanticType(base)
	if err != nil {
		return TypeRef{}, err
	}

	ref := TypeRef{Type: t}

	switch t {
	case descriptor.TypeArray:
		if arg == "" {
			return TypeRef{}, fmt.Errorf("%q: %w", s, errMissingTypeArg)
		}

		elem, err := descriptor.ParseSemanticType(arg)
		switch {
		case err != nil:
			ref.Elem = descriptor.TypeNested
			ref.Ref = arg
		case elem == descriptor.TypeArray:
			return TypeRef{}, fmt.Errorf("%q: %w", s, descriptor.ErrNestedArray)
		case elem == descriptor.TypeNested:
			return TypeRef{}, fmt.Errorf("%q: array of objects must name the object", s)
		default:
			ref.Elem = elem
		}

	case descriptor.TypeNested:
		if arg == "" {
			return TypeRef{}, fmt.Errorf("%q: %w", s, errMissingTypeArg)
		}

		ref.Ref = arg

	default:
		if hasArg {
			return TypeRef{}, fmt.Errorf("%q: %w", s, errUnexpectedTypeArg)
		}
	}

	return ref, nil
}

// String renders the catalog notation.
func (r TypeRef) String() string {
	switch {
	case r.Type == descriptor.TypeArray && r.Ref != "":
		return "array|" + r.Ref
	case r.Type == descriptor.TypeArray:
		return "array|" + r.Elem.String()
	case r.Type == descriptor.TypeNested:
		return "object|" + r.Ref
	default:
		return r.Type.String()
	}
}

// IsZero reports whether no type was given.
func (r TypeRef) IsZero() bool {
	return r.Type == descriptor.TypeInvalid
}

// UnmarshalYAML parses the catalog notation from a scalar.
func (r *TypeRef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: field type must be a string", node.Line)
	}

	ref, err := ParseTypeRef(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	*r = ref

	return nil
}

// MarshalYAML writes the catalog notation.
func (r TypeRef) MarshalYAML() (any, error) {
	return r.String(), nil
}
