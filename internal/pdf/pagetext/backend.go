// Package pagetext turns the pages of a PDF document into plain-text blocks.
// A primary backend does the work; every page that fails is retried once on
// an independent secondary backend, and a page both backends give up on
// degrades to an empty block instead of failing the document.
package pagetext

import "fmt"

// Backend opens a PDF document for per-page text extraction.
type Backend interface {
	// Name identifies the backend in diagnostics.
	Name() string
	// Open parses the document bytes and returns a page-addressable handle.
	Open(data []byte) (Document, error)
}

// Document is an open PDF handle. Implementations must tolerate concurrent
// PageText calls for different pages.
type Document interface {
	// PageCount returns the number of pages in the document.
	PageCount() int
	// PageText returns the plain text of one page. Page numbers are 1-based.
	PageText(pageNum int) (string, error)
	// Close releases the handle.
	Close() error
}

// BackendError wraps a failure of one backend so callers can tell which
// library gave up.
type BackendError struct {
	Backend string
	Op      string
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("pagetext %s backend: %s: %v", e.Backend, e.Op, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
