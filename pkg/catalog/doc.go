// Package catalog holds the curated UX4G component registry. Definitions are
// loaded from embedded YAML once, validated up front, and then shared
// read-only by the resolver, generator, validator and refiner. The package
// also exposes the design tokens as a go-theme manifest so renderers can pick
// up CSS variables and asset locations for the catalog version.
package catalog
