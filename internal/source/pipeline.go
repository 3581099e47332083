package source

import (
	"fmt"
	"log"
	"strings"
)

// Options configure a single extraction run.
type Options struct {
	// BaseDir, when non-empty, is prefixed to every output path.
	BaseDir string
	// Language narrows the materialized mapping to one language. Empty
	// means all languages. Filtering never changes segment detection or
	// deduplication, only which entries are materialized.
	Language Language
	// Logger receives debug diagnostics, including the raw text of dropped
	// segments. Nil disables them.
	Logger *log.Logger
}

// Result is the terminal, immutable output of one pipeline run.
type Result struct {
	// Files maps relative path to source text.
	Files map[string]string
	// Segments counts the segments that resolved to an output path,
	// before any language filtering.
	Segments int
	// ByLanguage counts resolved segments per language, unfiltered.
	ByLanguage map[Language]int
	// Dropped counts segments discarded because no filename could be
	// resolved. Surfaced to callers as a non-fatal warning.
	Dropped int
}

// Pipeline assembles the extraction stages for one document. A pipeline
// value carries no state between runs; concurrent runs need separate
// Result handling only.
type Pipeline struct {
	opts Options
}

// NewPipeline creates a pipeline with the given options.
func NewPipeline(opts Options) *Pipeline {
	return &Pipeline{opts: opts}
}

// Run executes the pipeline over ordered page texts and produces the final
// path-to-source mapping. Page 0 is the cover page and is always excluded;
// a one-page document therefore yields an empty mapping. A document with no
// pages at all is a fatal error.
func (p *Pipeline) Run(pages []string) (*Result, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("document has no pages")
	}

	detector := NewBoundaryDetector()
	for _, page := range pages[1:] {
		if page == "" {
			// An unreadable page degraded to empty text; skip it.
			continue
		}
		for _, raw := range strings.Split(NormalizePageText(page), "\n") {
			detector.Advance(ClassifyLine(strings.TrimRight(raw, "\r")))
		}
	}

	result := &Result{
		Files:      make(map[string]string),
		ByLanguage: make(map[Language]int),
	}
	dedupe := NewDeduplicator()

	for _, seg := range detector.Finish() {
		lang, _ := DetectLanguage(seg)
		rel, err := ResolvePath(seg, lang)
		if err != nil {
			result.Dropped++
			if p.opts.Logger != nil {
				p.opts.Logger.Printf("dropping unresolved segment (%d lines): %.120q", len(seg.Lines), seg.Body())
			}
			continue
		}
		result.Segments++
		result.ByLanguage[lang]++

		// Deduplicate over the full segment set so filtered and unfiltered
		// runs agree on names.
		final := dedupe.Claim(rel)
		if p.opts.Language != "" && lang != p.opts.Language {
			continue
		}
		result.Files[p.prefixed(final)] = seg.Body()
	}

	return result, nil
}

// prefixed applies the configured base directory to a relative path.
func (p *Pipeline) prefixed(rel string) string {
	base := strings.Trim(strings.TrimSpace(p.opts.BaseDir), "/\\")
	if base == "" {
		return rel
	}
	return base + "/" + rel
}
