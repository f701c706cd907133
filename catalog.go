package ux4g

import (
	"io/fs"

	"github.com/goliatone/go-ux4g/pkg/catalog"
	"github.com/goliatone/go-ux4g/pkg/orchestrator"
)

// EmbeddedCatalog exposes the bundled component definitions so callers can
// copy or extend them without importing the catalog package directly.
func EmbeddedCatalog() fs.FS {
	return catalog.EmbeddedFS()
}

// LoadCatalog builds a registry from the definition files in fsys.
func LoadCatalog(fsys fs.FS) (*catalog.Registry, error) {
	return catalog.LoadFS(fsys)
}

// WithCatalog passes a registry through to the orchestrator.
func WithCatalog(registry *catalog.Registry) orchestrator.Option {
	return orchestrator.WithRegistry(registry)
}
