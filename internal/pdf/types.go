package pdf

// Request and result types for the source-extraction service.

// PDFExtractSourcesRequest asks for the source files typeset in a PDF.
type PDFExtractSourcesRequest struct {
	// Path is the full path to the PDF file.
	Path string `json:"path"`
	// BaseDir, when set, prefixes every recovered path.
	BaseDir string `json:"base_dir,omitempty"`
	// Language narrows the output to "java" or "php"; empty means all.
	Language string `json:"language,omitempty"`
}

// SourceFileInfo summarizes one recovered source file.
type SourceFileInfo struct {
	Path     string `json:"path"`
	Language string `json:"language"`
	Size     int    `json:"size"`
}

// PDFExtractSourcesResult is the complete mapping recovered from one PDF,
// plus aggregate counts for reporting.
type PDFExtractSourcesResult struct {
	Path string `json:"path"`
	// Pages is the page count of the document, cover page included.
	Pages int `json:"pages"`
	// Files maps relative path to source text.
	Files map[string]string `json:"files"`
	// FileList lists the recovered files sorted by path.
	FileList []SourceFileInfo `json:"file_list"`
	// Segments counts all resolved segments, before language filtering.
	Segments int `json:"segments"`
	// ByLanguage counts resolved segments per language.
	ByLanguage map[string]int `json:"by_language"`
	// DroppedSegments counts segments discarded for lack of a resolvable
	// filename. Non-fatal; surfaced in Warnings.
	DroppedSegments int `json:"dropped_segments"`
	// Warnings carries non-fatal diagnostics.
	Warnings []string `json:"warnings,omitempty"`
}

// PDFExtractArchiveRequest asks for the recovered sources packaged as a zip.
type PDFExtractArchiveRequest struct {
	Path       string `json:"path"`
	OutputPath string `json:"output_path"`
	BaseDir    string `json:"base_dir,omitempty"`
	Language   string `json:"language,omitempty"`
}

// PDFExtractArchiveResult reports the archive that was written.
type PDFExtractArchiveResult struct {
	OutputPath  string   `json:"output_path"`
	FileCount   int      `json:"file_count"`
	ArchiveSize int      `json:"archive_size"`
	Warnings    []string `json:"warnings,omitempty"`
}

// PDFValidateFileRequest asks whether a file is a readable PDF.
type PDFValidateFileRequest struct {
	Path string `json:"path"`
}

// PDFValidateFileResult reports the validation outcome.
type PDFValidateFileResult struct {
	Path    string `json:"path"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}
