package catalog

import (
	"embed"
	"io/fs"
)

//go:embed data
var embeddedData embed.FS

// EmbeddedFS returns the curated catalog definitions bundled with the
// package. Pass it to LoadFS to build a registry from the defaults.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedData, "data")
	if err != nil {
		// the embed directive guarantees the directory exists
		panic(err)
	}
	return sub
}
