package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/echa/config"

	"restmapper/internal/catalog"
	"restmapper/internal/coerce"
	"restmapper/internal/diagnostic"
	"restmapper/internal/metadata"
	"restmapper/internal/record"
	"restmapper/internal/registry"
	"restmapper/internal/schema"
)

// loadCatalog reads the configured catalog, or the embedded one.
func loadCatalog() (*catalog.File, error) {
	path := config.GetString("catalog.path")
	if path == "" {
		return catalog.Parse(catalog.DefaultYAML())
	}

	log.Debugf("Loading catalog %s", path)

	return catalog.LoadFile(path)
}

// loadRegistry builds the frozen registry. Diagnostics are returned even
// when the build fails.
func loadRegistry() (*registry.Registry, *diagnostic.Diagnostics, error) {
	f, err := loadCatalog()
	if err != nil {
		return nil, nil, err
	}

	reg, diags := catalog.Build(f)
	if diags.HasErrors() {
		return nil, diags, fmt.Errorf("invalid catalog: %w", diags.Error())
	}

	for _, d := range diags.Warnings {
		log.Warn(d.String())
	}

	return reg, diags, nil
}

// openMetadata returns the configured metadata source, nil when none is
// configured. The returned close function is never nil.
func openMetadata() (metadata.Source, func() error, error) {
	noop := func() error { return nil }

	path := config.GetString("metadata.path")
	if path == "" {
		return nil, noop, nil
	}

	static, err := metadata.LoadStatic(path)
	if err != nil {
		return nil, noop, err
	}

	snapshot := config.GetString("metadata.snapshot")
	if snapshot == "" {
		return static, noop, nil
	}

	store, err := metadata.OpenStore(snapshot)
	if err != nil {
		return nil, noop, err
	}

	return metadata.NewCached(static, store), store.Close, nil
}

func newConverter() (*record.Converter, error) {
	cat, err := coerce.ParseCategory(config.GetString("convert.coercion"))
	if err != nil {
		return nil, err
	}

	log.Debugf("Accepted coercions: %s", cat)

	return record.NewConverter(record.WithCoercion(cat)), nil
}

// customFields merges metadata answers for the configured tenant with
// fields given as "name:type" specs.
func customFields(ctx context.Context, src metadata.Source, object string, specs []string) ([]schema.CustomField, error) {
	var fields []schema.CustomField

	if tenant := config.GetString("metadata.tenant"); src != nil && tenant != "" {
		found, err := src.CustomFields(ctx, tenant, object)
		if err != nil {
			return nil, fmt.Errorf("custom fields of %s for tenant %s: %w", object, tenant, err)
		}

		fields = append(fields, found...)
	}

	extra, err := schema.ParseCustomFields(specs)
	if err != nil {
		return nil, err
	}

	return append(fields, extra...), nil
}

// deriveSchema is the common path of the schema, convert and payload
// commands.
func deriveSchema(ctx context.Context, object string, specs []string) (*schema.Schema, error) {
	reg, _, err := loadRegistry()
	if err != nil {
		return nil, err
	}

	src, closeMeta, err := openMetadata()
	if err != nil {
		return nil, err
	}
	defer closeMeta()

	custom, err := customFields(ctx, src, object, specs)
	if err != nil {
		return nil, err
	}

	s, err := schema.NewDeriver(reg).Derive(object, custom...)
	if err != nil {
		return nil, err
	}

	for _, d := range s.Diagnostics().All() {
		if d.Severity == diagnostic.SeverityInfo {
			log.Info(d.String())
			continue
		}

		log.Warn(d.String())
	}

	return s, nil
}

var errFailed = errors.New("check failed")
