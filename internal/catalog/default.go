package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"restmapper/internal/registry"
)

//go:embed objects.yaml
var defaultCatalog []byte

var (
	defaultOnce sync.Once
	defaultReg  *registry.Registry
	defaultErr  error
)

// DefaultYAML returns the embedded catalog document.
func DefaultYAML() []byte {
	return defaultCatalog
}

// Default returns the registry built from the embedded catalog. The
// registry is built once and shared; it is frozen.
func Default() (*registry.Registry, error) {
	defaultOnce.Do(func() {
		f, err := Parse(defaultCatalog)
		if err != nil {
			defaultErr = err
			return
		}

		reg, diags := Build(f)
		if diags.HasErrors() {
			defaultErr = fmt.Errorf("embedded catalog: %w", diags.Error())
			return
		}

		defaultReg = reg
	})

	return defaultReg, defaultErr
}
