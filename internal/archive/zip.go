// Package archive packages a recovered path-to-source mapping as a zip
// archive, the shape callers download or write to disk.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"sort"
)

// BuildZip creates an in-memory zip archive from the mapping. Entries are
// written in sorted path order so byte-identical mappings produce
// byte-identical archives. An empty mapping is an error: there is nothing
// to hand the caller.
func BuildZip(files map[string]string) ([]byte, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no sources to add to archive")
	}

	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, p := range paths {
		f, err := w.Create(p)
		if err != nil {
			return nil, fmt.Errorf("failed to create archive entry %s: %w", p, err)
		}
		if _, err := f.Write([]byte(files[p])); err != nil {
			return nil, fmt.Errorf("failed to write archive entry %s: %w", p, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}
