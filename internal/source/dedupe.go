package source

import (
	"fmt"
	"path"
	"strings"
)

// Deduplicator guarantees global uniqueness of output paths across one
// document. The first claim of a path keeps its unmodified name; later
// collisions get a numeric disambiguator before the extension, so the same
// segment order always yields the same names.
type Deduplicator struct {
	used map[string]struct{}
}

// NewDeduplicator creates an empty deduplicator for one pipeline run.
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{used: make(map[string]struct{})}
}

// Claim registers a candidate path and returns the unique name it was
// granted, e.g. Animal.java, Animal_2.java, Animal_3.java.
func (d *Deduplicator) Claim(candidate string) string {
	if _, taken := d.used[candidate]; !taken {
		d.used[candidate] = struct{}{}
		return candidate
	}

	dir, file := path.Split(candidate)
	ext := path.Ext(file)
	stem := strings.TrimSuffix(file, ext)
	for n := 2; ; n++ {
		renamed := fmt.Sprintf("%s%s_%d%s", dir, stem, n, ext)
		if _, taken := d.used[renamed]; !taken {
			d.used[renamed] = struct{}{}
			return renamed
		}
	}
}
