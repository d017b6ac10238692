// Package corpus embeds the default Redis best-practices corpus so the
// server runs with zero configuration. The layout matches what the
// loader expects from an on-disk corpus: rules/*.md documents (with the
// reserved rules/_sections.md registry) and an optional AGENTS.md
// aggregate at the root.
package corpus

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed all:rules
var files embed.FS

// Default returns the embedded corpus as a filesystem rooted the same
// way an on-disk corpus directory would be.
func Default() fs.FS {
	return files
}

// Dir adapts an on-disk corpus directory to the same interface.
func Dir(path string) fs.FS {
	return os.DirFS(path)
}
