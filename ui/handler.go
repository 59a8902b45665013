// Package ui serves the browser shell of the console.
package ui

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

const indexFile = "index.html"

// Handler serves files from fsys. Paths that name no file fall back to index.html so
// client-side routes such as /admin and /umbrella-agreements load the shell.
// API paths are never rewritten.
func Handler(fsys fs.FS) http.Handler {
	files := http.FileServerFS(fsys)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}

		name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
		if name == "" {
			name = indexFile
		}
		if _, err := fs.Stat(fsys, name); errors.Is(err, fs.ErrNotExist) {
			w.Header().Set("Cache-Control", "no-cache")
			http.ServeFileFS(w, r, fsys, indexFile)
			return
		}
		files.ServeHTTP(w, r)
	})
}
