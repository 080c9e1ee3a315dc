package catalog

import (
	"restmapper/internal/descriptor"
)

// File is the root of a catalog document.
type File struct {
	Version string   `yaml:"version"`
	Objects []Object `yaml:"objects"`
}

// Object is one object declaration.
type Object struct {
	Name        string        `yaml:"name"`
	Kind        string        `yaml:"kind,omitempty"`
	Description string        `yaml:"description,omitempty"`
	Related     StringOrArray `yaml:"related,omitempty"`
	Fields      []Field       `yaml:"fields,omitempty"`

	// CustomSuffix marks tenant field names, e.g. "__NS".
	CustomSuffix string `yaml:"custom_suffix,omitempty"`
}

// Field is one field declaration.
type Field struct {
	Name     string  `yaml:"name"`
	Label    string  `yaml:"label,omitempty"`
	Type     TypeRef `yaml:"type"`
	Nullable *bool   `yaml:"nullable,omitempty"`
	Custom   bool    `yaml:"custom,omitempty"`
	Update   bool    `yaml:"update,omitempty"`
	Select   bool    `yaml:"select,omitempty"`
}

// StringOrArray holds a list written either as a single string or as a
// sequence.
type StringOrArray []string

// TypeRef is a parsed field type: a semantic type plus the element type
// of arrays and the object referenced by nested fields.
type TypeRef struct {
	Type descriptor.SemanticType
	Elem descriptor.SemanticType
	Ref  string
}
