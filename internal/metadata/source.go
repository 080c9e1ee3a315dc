package metadata

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"restmapper/internal/schema"
)

// AnyTenant is the tenant key that applies when a tenant has no entry
// of its own.
const AnyTenant = "*"

// ErrNotFound is returned by snapshot lookups with no stored answer.
var ErrNotFound = errors.New("no custom field metadata")

// Source reports the custom fields a tenant has defined on an object.
type Source interface {
	CustomFields(ctx context.Context, tenant, object string) ([]schema.CustomField, error)
}

// Static is an in-memory Source. Objects without an entry have no
// custom fields.
type Static struct {
	tenants map[string]map[string][]schema.CustomField
}

var _ Source = (*Static)(nil)

// NewStatic returns an empty table.
func NewStatic() *Static {
	return &Static{tenants: make(map[string]map[string][]schema.CustomField)}
}

// Add appends fields to the tenant's entry for object.
func (s *Static) Add(tenant, object string, fields ...schema.CustomField) {
	objects, ok := s.tenants[tenant]
	if !ok {
		objects = make(map[string][]schema.CustomField)
		s.tenants[tenant] = objects
	}

	objects[object] = append(objects[object], fields...)
}

// CustomFields returns a copy of the stored fields, falling back to the
// AnyTenant entry.
func (s *Static) CustomFields(_ context.Context, tenant, object string) ([]schema.CustomField, error) {
	if objects, ok := s.tenants[tenant]; ok {
		if fields, ok := objects[object]; ok {
			return slices.Clone(fields), nil
		}
	}

	if objects, ok := s.tenants[AnyTenant]; ok {
		return slices.Clone(objects[object]), nil
	}

	return nil, nil
}

type staticFile struct {
	Tenants map[string]map[string][]string `yaml:"tenants"`
}

// ParseStatic reads a YAML table of the form
//
//	tenants:
//	  acme:
//	    Subscription:
//	      - region__c:string
//	      - seats__c:long
//	  "*":
//	    Account:
//	      - segment__c
func ParseStatic(data []byte) (*Static, error) {
	var f staticFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("metadata: %w", err)
	}

	s := NewStatic()

	for tenant, objects := range f.Tenants {
		for object, specs := range objects {
			fields, err := schema.ParseCustomFields(specs)
			if err != nil {
				return nil, fmt.Errorf("metadata: tenant %s object %s: %w", tenant, object, err)
			}

			s.Add(tenant, object, fields...)
		}
	}

	return s, nil
}

// LoadStatic reads a ParseStatic table from a file.
func LoadStatic(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("metadata: %w", err)
	}

	return ParseStatic(data)
}
