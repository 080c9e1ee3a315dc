package schema

import (
	"errors"
	"fmt"
	"strings"

	"restmapper/internal/descriptor"
)

// ErrInvalidCustomField is wrapped by errors about malformed custom fields.
var ErrInvalidCustomField = errors.New("invalid custom field")

// CustomField is a tenant-defined field reported by the remote API's
// field metadata. Only primitive types are allowed.
type CustomField struct {
	Name  string
	Type  descriptor.SemanticType
	Label string
}

// String renders the "name:type" notation accepted by ParseCustomField.
func (c CustomField) String() string {
	return c.Name + ":" + c.Type.String()
}

func (c CustomField) validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidCustomField)
	}

	if !c.Type.IsPrimitive() {
		return fmt.Errorf("%w %q: type %s is not primitive", ErrInvalidCustomField, c.Name, c.Type)
	}

	return nil
}

// ParseCustomField parses "name" or "name:type". The type defaults to
// string, which is how the remote API reports most tenant fields.
func ParseCustomField(spec string) (CustomField, error) {
	name, typ, hasType := strings.Cut(strings.TrimSpace(spec), ":")

	c := CustomField{Name: strings.TrimSpace(name), Type: descriptor.TypeString}

	if hasType {
		t, err := descriptor.ParseSemanticType(typ)
		if err != nil {
			return CustomField{}, fmt.Errorf("%w %q: %w", ErrInvalidCustomField, spec, err)
		}

		c.Type = t
	}

	if err := c.validate(); err != nil {
		return CustomField{}, err
	}

	return c, nil
}

// ParseCustomFields parses a list of ParseCustomField specs.
func ParseCustomFields(specs []string) ([]CustomField, error) {
	out := make([]CustomField, 0, len(specs))

	for _, s := range specs {
		c, err := ParseCustomField(s)
		if err != nil {
			return nil, err
		}

		out = append(out, c)
	}

	return out, nil
}
