package pagetext

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// LedongthucBackend is the primary text backend, built on ledongthuc/pdf.
// It is fast and decodes font encodings properly, but its parser is strict
// and panics on some malformed documents, so every call is recovered.
type LedongthucBackend struct{}

// Name identifies the backend.
func (b *LedongthucBackend) Name() string {
	return "ledongthuc"
}

// Open parses the document bytes.
func (b *LedongthucBackend) Open(data []byte) (doc Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = &BackendError{Backend: b.Name(), Op: "open", Err: fmt.Errorf("parser panic: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &BackendError{Backend: b.Name(), Op: "open", Err: err}
	}
	return &ledongthucDocument{reader: reader}, nil
}

type ledongthucDocument struct {
	reader *pdf.Reader
}

func (d *ledongthucDocument) PageCount() int {
	return d.reader.NumPage()
}

func (d *ledongthucDocument) PageText(pageNum int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &BackendError{Backend: "ledongthuc", Op: "page_text", Err: fmt.Errorf("parser panic on page %d: %v", pageNum, r)}
		}
	}()

	if pageNum < 1 || pageNum > d.reader.NumPage() {
		return "", &BackendError{Backend: "ledongthuc", Op: "page_text", Err: fmt.Errorf("invalid page number %d", pageNum)}
	}

	page := d.reader.Page(pageNum)
	if page.V.IsNull() {
		return "", &BackendError{Backend: "ledongthuc", Op: "page_text", Err: fmt.Errorf("page %d is null", pageNum)}
	}

	// GetTextByRow preserves the visual line structure, which the boundary
	// detector depends on; GetPlainText would run the rows together.
	rows, err := page.GetTextByRow()
	if err != nil {
		return "", &BackendError{Backend: "ledongthuc", Op: "page_text", Err: err}
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, word := range row.Content {
			b.WriteString(word.S)
		}
	}
	return b.String(), nil
}

func (d *ledongthucDocument) Close() error {
	return nil
}
