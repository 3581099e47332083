package pdf

import (
	"bytes"
	"fmt"
	"os"
	"strings"
)

// pdfHeader is the magic every PDF starts with, possibly after a BOM or a
// few bytes of junk some generators emit.
var pdfHeader = []byte("%PDF-")

// Validator performs the document-level checks whose failure is fatal for a
// run: missing file, wrong type, size cap, not a PDF at all.
type Validator struct {
	maxFileSize int64
}

// NewValidator creates a validator with the given size cap.
func NewValidator(maxFileSize int64) *Validator {
	return &Validator{maxFileSize: maxFileSize}
}

// ValidateFile reports whether a file on disk looks like a readable PDF.
// A failed check is a result, not an error.
func (v *Validator) ValidateFile(req PDFValidateFileRequest) (*PDFValidateFileResult, error) {
	result := &PDFValidateFileResult{Path: req.Path}
	if err := v.validatePDFFile(req.Path); err != nil {
		result.Message = err.Error()
		return result, nil
	}
	result.Valid = true
	return result, nil
}

// validatePDFFile performs the file-level checks.
func (v *Validator) validatePDFFile(filePath string) error {
	if filePath == "" {
		return fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", filePath)
	}
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	if !strings.HasSuffix(strings.ToLower(filePath), ".pdf") {
		return fmt.Errorf("file is not a PDF: %s", filePath)
	}
	if fileInfo.Size() == 0 {
		return fmt.Errorf("file is empty: %s", filePath)
	}
	if fileInfo.Size() > v.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), v.maxFileSize)
	}

	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("cannot open file: %w", err)
	}
	defer f.Close()

	head := make([]byte, 1024)
	n, _ := f.Read(head)
	if !bytes.Contains(head[:n], pdfHeader) {
		return fmt.Errorf("file does not carry a PDF header: %s", filePath)
	}
	return nil
}

// ValidateData performs the same header check on in-memory document bytes.
func (v *Validator) ValidateData(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("PDF data is empty")
	}
	if int64(len(data)) > v.maxFileSize {
		return fmt.Errorf("PDF too large: %d bytes (max: %d bytes)", len(data), v.maxFileSize)
	}
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	if !bytes.Contains(head, pdfHeader) {
		return fmt.Errorf("data does not carry a PDF header")
	}
	return nil
}

// IsValidPDF performs a quick check to see if a file is a valid PDF.
func (v *Validator) IsValidPDF(filePath string) bool {
	return v.validatePDFFile(filePath) == nil
}
