package descriptor

import (
	"fmt"
	"strings"

	"restmapper/internal/common"
)

//go:generate go tool stringer -type=SemanticType -linecomment -output=semantictype_string.go

// SemanticType is the declared type of a field as the remote API sees it.
type SemanticType int

const (
	TypeInvalid   SemanticType = iota // invalid
	TypeBoolean                       // boolean
	TypeInt                           // int
	TypeLong                          // long
	TypeDouble                        // double
	TypeString                        // string
	TypeBytes                         // bytes
	TypeTimestamp                     // timestamp
	TypeArray                         // array
	TypeNested                        // object

	// TypeTotal is the number of semantic types including TypeInvalid.
	TypeTotal = int(iota)
)

// IsValid reports whether t is a known, non-invalid type.
func (t SemanticType) IsValid() bool {
	return t > TypeInvalid && int(t) < TypeTotal
}

// IsPrimitive reports whether t maps to a scalar schema type.
func (t SemanticType) IsPrimitive() bool {
	switch t {
	default:
		return false
	case TypeBoolean, TypeInt, TypeLong, TypeDouble, TypeString, TypeBytes, TypeTimestamp:
		return true
	}
}

// IsNumber reports whether t is one of the numeric types.
func (t SemanticType) IsNumber() bool {
	switch t {
	default:
		return false
	case TypeInt, TypeLong, TypeDouble:
		return true
	}
}

// MarshalText renders the catalog spelling of the type.
func (t SemanticType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText accepts every spelling ParseSemanticType does.
func (t *SemanticType) UnmarshalText(text []byte) error {
	v, err := ParseSemanticType(string(text))
	if err != nil {
		return err
	}

	*t = v

	return nil
}

var semanticTypeNames = map[string]SemanticType{
	"boolean":   TypeBoolean,
	"bool":      TypeBoolean,
	"int":       TypeInt,
	"integer":   TypeInt,
	"long":      TypeLong,
	"int64":     TypeLong,
	"double":    TypeDouble,
	"number":    TypeDouble,
	"decimal":   TypeDouble,
	"string":    TypeString,
	"bytes":     TypeBytes,
	"binary":    TypeBytes,
	"timestamp": TypeTimestamp,
	"date-time": TypeTimestamp,
	"datetime":  TypeTimestamp,
	"array":     TypeArray,
	"object":    TypeNested,
	"nested":    TypeNested,
}

// ParseSemanticType parses the spellings used in object catalogs and in
// field metadata responses. Matching is case-insensitive.
func ParseSemanticType(s string) (SemanticType, error) {
	t, ok := semanticTypeNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return TypeInvalid, fmt.Errorf("unknown semantic type %q", s)
	}

	return t, nil
}

// ObjectKind tells whether an object is fetched on its own or only
// appears embedded in other objects.
type ObjectKind int

const (
	KindTopLevel ObjectKind = iota
	KindNested
)

// String returns the catalog spelling of the kind.
func (k ObjectKind) String() string {
	switch k {
	case KindTopLevel:
		return "top_level"
	case KindNested:
		return "nested"
	default:
		return common.UnknownStr
	}
}

// ParseObjectKind accepts "top_level" (also "top-level", "toplevel") and
// "nested". The empty string defaults to top level.
func ParseObjectKind(s string) (ObjectKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "top_level", "top-level", "toplevel":
		return KindTopLevel, nil
	case "nested":
		return KindNested, nil
	default:
		return KindTopLevel, fmt.Errorf("unknown object kind %q", s)
	}
}
