//go:build debug

package ui

import (
	"io/fs"
	"os"
)

// DistFS returns a live filesystem rooted at ui/dist (debug: reads from disk).
// Shell edits are visible without recompiling Go.
func DistFS() (fs.FS, error) {
	return os.DirFS("ui/dist"), nil
}
