package resources

import (
	"embed"
	"io/fs"
)

//go:embed morph/*.bsv
var bundled embed.FS

// Morphology returns the bundled verb tables.
func Morphology() fs.FS {
	sub, err := fs.Sub(bundled, "morph")
	if err != nil {
		panic(err)
	}
	return sub
}
