package schema

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"restmapper/internal/descriptor"
	"restmapper/internal/registry"
)

// Resolver looks up object descriptors by name. *registry.Registry
// implements it.
type Resolver interface {
	Resolve(name string) (*descriptor.Object, error)
}

// DefaultCacheSize is the number of schemas WithCache keeps when given a
// non-positive size.
const DefaultCacheSize = 256

// Deriver builds schemas from the descriptors of a Resolver.
type Deriver struct {
	reg   Resolver
	cache *lru.Cache[string, *Schema]
}

// Option configures a Deriver.
type Option func(*Deriver)

// WithCache keeps up to size derived schemas keyed by object name and
// custom field list, evicting the least recently used. Callers must not
// modify returned schemas when caching is on.
func WithCache(size int) Option {
	return func(d *Deriver) {
		if size <= 0 {
			size = DefaultCacheSize
		}

		c, err := lru.New[string, *Schema](size)
		if err != nil {
			log.Errorf("schema: derivation cache disabled: %v", err)
			return
		}

		d.cache = c
	}
}

// NewDeriver creates a deriver over reg.
func NewDeriver(reg Resolver, opts ...Option) *Deriver {
	d := &Deriver{reg: reg}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Derive returns the schema of the named object: declared fields in
// declaration order followed by the custom fields not already present,
// in the order given.
func (d *Deriver) Derive(object string, custom ...CustomField) (*Schema, error) {
	if d.cache == nil {
		return d.derive(object, custom)
	}

	key := cacheKey(object, custom)
	if s, ok := d.cache.Get(key); ok {
		return s, nil
	}

	s, err := d.derive(object, custom)
	if err != nil {
		return nil, err
	}

	if prev, ok, _ := d.cache.PeekOrAdd(key, s); ok {
		return prev, nil
	}

	return s, nil
}

// CacheLen returns the number of cached schemas, 0 without a cache.
func (d *Deriver) CacheLen() int {
	if d.cache == nil {
		return 0
	}

	return d.cache.Len()
}

// cacheKey quotes every part, so names and labels containing the
// separator cannot make two custom field lists share a key.
func cacheKey(object string, custom []CustomField) string {
	var b strings.Builder

	b.WriteString(strconv.Quote(object))

	for _, c := range custom {
		b.WriteByte(' ')
		b.WriteString(strconv.Quote(c.Name))
		b.WriteByte(':')
		b.WriteString(c.Type.String())
		b.WriteByte(':')
		b.WriteString(strconv.Quote(c.Label))
	}

	return b.String()
}

func (d *Deriver) derive(object string, custom []CustomField) (*Schema, error) {
	for _, c := range custom {
		if err := c.validate(); err != nil {
			return nil, fmt.Errorf("object %q: %w", object, err)
		}
	}

	s, err := d.deriveObject(object, nil)
	if err != nil {
		return nil, err
	}

	added := make(map[string]bool, len(custom))

	for _, c := range custom {
		if s.CustomSuffix != "" && !strings.HasSuffix(c.Name, s.CustomSuffix) {
			s.Filtered = append(s.Filtered, c)
			log.Debugf("schema: %s.%s: custom field skipped, expected suffix %q", object, c.Name, s.CustomSuffix)

			continue
		}

		if existing, ok := s.Field(c.Name); ok {
			s.Collisions = append(s.Collisions, Collision{
				Object:     object,
				Field:      c.Name,
				Declared:   existing.Type,
				Discovered: c.Type,
				Duplicate:  added[c.Name],
			})

			log.Debugf("schema: %s.%s: custom field (%s) dropped, name taken (%s)",
				object, c.Name, c.Type, existing.Type)

			continue
		}

		added[c.Name] = true

		label := c.Label
		if label == "" {
			label = c.Name
		}

		s.add(Field{
			Name:       c.Name,
			Label:      label,
			Type:       c.Type,
			Nullable:   true,
			Writable:   true,
			Selectable: true,
			Custom:     true,
		})
	}

	log.Debugf("schema: derived %s with %d fields (%d custom, %d collisions)",
		object, s.Len(), len(custom)-len(s.Collisions)-len(s.Filtered), len(s.Collisions))

	return s, nil
}

// deriveObject derives the declared part of a schema. stack holds the
// objects being expanded above this one.
func (d *Deriver) deriveObject(object string, stack []string) (*Schema, error) {
	obj, err := d.reg.Resolve(object)
	if err != nil {
		return nil, err
	}

	stack = append(stack, object)
	s := newSchema(object, obj.Len())
	s.CustomSuffix = obj.CustomFieldSuffix()

	for i := range obj.Len() {
		df := obj.FieldAt(i)

		f := Field{
			Name:       df.WireName(),
			Label:      df.DisplayName(),
			Type:       df.Type(),
			Elem:       df.Elem(),
			Nullable:   true,
			Writable:   df.Writable(),
			Selectable: df.Selectable(),
			Custom:     df.Custom() || obj.IsCustomName(df.WireName()),
		}

		if ref := df.NestedRef(); ref != "" {
			if at := slices.Index(stack, ref); at >= 0 {
				cycle := append(slices.Clone(stack[at:]), ref)
				return nil, &registry.CyclicReferenceError{Cycle: cycle, Object: object, Field: df.WireName()}
			}

			nested, err := d.deriveObject(ref, stack)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", object, df.WireName(), err)
			}

			f.Nested = nested
		}

		s.add(f)
	}

	return s, nil
}
