package pagetext

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Extractor extracts per-page plain text with a primary backend and an
// independent fallback. Pages are independent, so extraction fans out across
// a bounded worker pool and the results are joined in page order before the
// sequential boundary detector ever sees them.
type Extractor struct {
	primary  Backend
	fallback Backend
	workers  int
	logger   *log.Logger
}

// NewExtractor creates an extractor with the standard backend pair:
// ledongthuc/pdf first, pdfcpu as the retry. A nil logger disables
// diagnostics.
func NewExtractor(logger *log.Logger) *Extractor {
	return &Extractor{
		primary:  &LedongthucBackend{},
		fallback: &PDFCPUBackend{},
		workers:  runtime.NumCPU(),
		logger:   logger,
	}
}

// NewExtractorWithBackends creates an extractor with explicit backends,
// used by tests.
func NewExtractorWithBackends(primary, fallback Backend, logger *log.Logger) *Extractor {
	return &Extractor{
		primary:  primary,
		fallback: fallback,
		workers:  runtime.NumCPU(),
		logger:   logger,
	}
}

// ExtractPages returns one plain-text block per page, in page order. A page
// that both backends fail on yields an empty block; only a document neither
// backend can open, or one with zero pages, is an error.
func (e *Extractor) ExtractPages(ctx context.Context, data []byte) ([]string, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("PDF data is empty")
	}

	primaryDoc, primaryErr := e.primary.Open(data)
	if primaryErr != nil {
		e.debugf("primary backend %s failed to open document: %v", e.primary.Name(), primaryErr)
	} else {
		defer primaryDoc.Close()
	}

	fallbackDoc, fallbackErr := e.fallback.Open(data)
	if fallbackErr != nil {
		e.debugf("fallback backend %s failed to open document: %v", e.fallback.Name(), fallbackErr)
	} else {
		defer fallbackDoc.Close()
	}

	if primaryErr != nil && fallbackErr != nil {
		return nil, fmt.Errorf("not a readable PDF: %s failed (%v) and %s failed (%v)",
			e.primary.Name(), primaryErr, e.fallback.Name(), fallbackErr)
	}

	pageCount := 0
	if primaryErr == nil {
		pageCount = primaryDoc.PageCount()
	} else {
		pageCount = fallbackDoc.PageCount()
	}
	if pageCount == 0 {
		return nil, fmt.Errorf("document has no pages")
	}

	texts := make([]string, pageCount)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i := 0; i < pageCount; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			texts[i] = e.pageText(i+1, primaryDoc, fallbackDoc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return texts, nil
}

// pageText runs the per-page primary/fallback policy. An empty primary
// result counts as a failure so the fallback gets its one retry.
func (e *Extractor) pageText(pageNum int, primary, fallback Document) string {
	if primary != nil {
		text, err := primary.PageText(pageNum)
		if err == nil && strings.TrimSpace(text) != "" {
			return text
		}
		if err != nil {
			e.debugf("page %d: primary extraction failed: %v", pageNum, err)
		}
	}
	if fallback != nil {
		text, err := fallback.PageText(pageNum)
		if err == nil {
			return text
		}
		e.debugf("page %d: fallback extraction failed: %v", pageNum, err)
	}
	return ""
}

func (e *Extractor) debugf(format string, args ...any) {
	if e.logger != nil {
		e.logger.Printf(format, args...)
	}
}
