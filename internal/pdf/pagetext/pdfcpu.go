package pagetext

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFCPUBackend is the secondary text backend, built on pdfcpu with relaxed
// validation. pdfcpu has no text extraction of its own, so the backend
// decodes each page's content stream and scans it for text-showing
// operators. The result is cruder than the primary backend's (complex font
// encodings come out garbled) but it survives documents the primary parser
// rejects.
type PDFCPUBackend struct{}

// Name identifies the backend.
func (b *PDFCPUBackend) Name() string {
	return "pdfcpu"
}

// Open parses the document bytes with relaxed validation.
func (b *PDFCPUBackend) Open(data []byte) (Document, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, &BackendError{Backend: b.Name(), Op: "open", Err: err}
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, &BackendError{Backend: b.Name(), Op: "open", Err: fmt.Errorf("failed to ensure page count: %w", err)}
	}
	return &pdfcpuDocument{ctx: ctx}, nil
}

type pdfcpuDocument struct {
	ctx *model.Context
}

func (d *pdfcpuDocument) PageCount() int {
	return d.ctx.PageCount
}

func (d *pdfcpuDocument) PageText(pageNum int) (string, error) {
	if pageNum < 1 || pageNum > d.ctx.PageCount {
		return "", &BackendError{Backend: "pdfcpu", Op: "page_text", Err: fmt.Errorf("invalid page number %d", pageNum)}
	}

	r, err := pdfcpu.ExtractPageContent(d.ctx, pageNum)
	if err != nil {
		return "", &BackendError{Backend: "pdfcpu", Op: "page_text", Err: err}
	}
	if r == nil {
		return "", nil
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return "", &BackendError{Backend: "pdfcpu", Op: "page_text", Err: err}
	}
	return decodeContentText(content), nil
}

func (d *pdfcpuDocument) Close() error {
	return nil
}
