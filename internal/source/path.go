package source

import (
	"fmt"
	"path"
	"strings"
)

// ErrNoFilename is returned when a segment carries neither a header filename
// nor a top-level type name to synthesize one from. Such segments are
// dropped with a warning, never a fatal error.
var ErrNoFilename = fmt.Errorf("segment has no resolvable filename")

// ResolvePath converts a segment's package/namespace declaration plus its
// provisional filename into a canonical relative path. Separators are
// forward slashes; no path component is empty.
func ResolvePath(seg *Segment, lang Language) (string, error) {
	filename := strings.ReplaceAll(seg.Filename, "\\", "/")
	if filename == "" {
		if seg.TypeName == "" {
			return "", ErrNoFilename
		}
		filename = seg.TypeName + lang.Extension()
	}

	if seg.Package != "" {
		// The package declaration, not any header directory prefix, decides
		// the directory layout.
		pkg := strings.ReplaceAll(seg.Package, ".", "/")
		pkg = strings.ReplaceAll(pkg, "\\", "/")
		filename = pkg + "/" + path.Base(filename)
	}

	cleaned := cleanRelPath(filename)
	if cleaned == "" {
		return "", ErrNoFilename
	}
	return cleaned, nil
}

// cleanRelPath rebuilds a slash path keeping only real components: empties,
// "." and ".." are discarded so output paths can never escape their root.
func cleanRelPath(p string) string {
	parts := strings.Split(p, "/")
	kept := parts[:0]
	for _, part := range parts {
		part = strings.TrimSpace(part)
		switch part {
		case "", ".", "..":
			continue
		}
		kept = append(kept, part)
	}
	return strings.Join(kept, "/")
}
