package pdf

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/srclift/pdf-source-extractor/internal/archive"
	"github.com/srclift/pdf-source-extractor/internal/pdf/pagetext"
	"github.com/srclift/pdf-source-extractor/internal/pdf/security"
	"github.com/srclift/pdf-source-extractor/internal/source"
)

// Service recovers compilable source files from PDF documents. It owns the
// document-level validation, the page-text extractor, and the extraction
// pipeline; callers talk to it through Request/Result structs.
type Service struct {
	maxFileSize   int64
	validator     *Validator
	extractor     *pagetext.Extractor
	pathValidator *security.PathValidator
	logger        *log.Logger
}

// NewService creates a service confined to the configured directory. A nil
// logger disables debug diagnostics.
func NewService(maxFileSize int64, configuredDirectory string, logger *log.Logger) (*Service, error) {
	pathValidator, err := security.NewPathValidator(configuredDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}
	return &Service{
		maxFileSize:   maxFileSize,
		validator:     NewValidator(maxFileSize),
		extractor:     pagetext.NewExtractor(logger),
		pathValidator: pathValidator,
		logger:        logger,
	}, nil
}

// PDFExtractSources recovers the source files typeset in a PDF and returns
// the relative-path-to-source mapping with aggregate counts.
func (s *Service) PDFExtractSources(ctx context.Context, req PDFExtractSourcesRequest) (*PDFExtractSourcesResult, error) {
	if err := s.pathValidator.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	if err := s.validator.validatePDFFile(req.Path); err != nil {
		return nil, err
	}

	lang, ok := source.ParseLanguage(req.Language)
	if !ok {
		return nil, fmt.Errorf("unknown language %q (use java, php, or leave empty)", req.Language)
	}

	data, err := os.ReadFile(req.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}
	return s.extractSources(ctx, req.Path, data, req.BaseDir, lang)
}

// ExtractSourcesFromBytes runs the pipeline over in-memory document bytes,
// for callers that already hold the document.
func (s *Service) ExtractSourcesFromBytes(ctx context.Context, data []byte, baseDir, language string) (*PDFExtractSourcesResult, error) {
	if err := s.validator.ValidateData(data); err != nil {
		return nil, err
	}
	lang, ok := source.ParseLanguage(language)
	if !ok {
		return nil, fmt.Errorf("unknown language %q (use java, php, or leave empty)", language)
	}
	return s.extractSources(ctx, "", data, baseDir, lang)
}

// extractSources is the shared extraction path: page texts in page order,
// then the sequential pipeline.
func (s *Service) extractSources(ctx context.Context, path string, data []byte, baseDir string, lang source.Language) (*PDFExtractSourcesResult, error) {
	pages, err := s.extractor.ExtractPages(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("failed to extract page text: %w", err)
	}

	pipeline := source.NewPipeline(source.Options{
		BaseDir:  baseDir,
		Language: lang,
		Logger:   s.logger,
	})
	run, err := pipeline.Run(pages)
	if err != nil {
		return nil, err
	}

	result := &PDFExtractSourcesResult{
		Path:            path,
		Pages:           len(pages),
		Files:           run.Files,
		Segments:        run.Segments,
		ByLanguage:      make(map[string]int, len(run.ByLanguage)),
		DroppedSegments: run.Dropped,
	}
	for l, n := range run.ByLanguage {
		result.ByLanguage[string(l)] = n
	}
	if run.Dropped > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d segment(s) dropped: no filename could be resolved", run.Dropped))
	}
	result.FileList = fileList(run.Files)
	return result, nil
}

// PDFExtractArchive recovers the sources and writes them as a zip archive.
func (s *Service) PDFExtractArchive(ctx context.Context, req PDFExtractArchiveRequest) (*PDFExtractArchiveResult, error) {
	if req.OutputPath == "" {
		return nil, fmt.Errorf("output path cannot be empty")
	}
	outputPath, err := s.pathValidator.NormalizePath(req.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	extracted, err := s.PDFExtractSources(ctx, PDFExtractSourcesRequest{
		Path:     req.Path,
		BaseDir:  req.BaseDir,
		Language: req.Language,
	})
	if err != nil {
		return nil, err
	}

	zipped, err := archive.BuildZip(extracted.Files)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(outputPath, zipped, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write archive: %w", err)
	}

	return &PDFExtractArchiveResult{
		OutputPath:  outputPath,
		FileCount:   len(extracted.Files),
		ArchiveSize: len(zipped),
		Warnings:    extracted.Warnings,
	}, nil
}

// PDFValidateFile performs validation on a PDF file.
func (s *Service) PDFValidateFile(req PDFValidateFileRequest) (*PDFValidateFileResult, error) {
	if err := s.pathValidator.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.validator.ValidateFile(req)
}

// GetMaxFileSize returns the maximum file size limit.
func (s *Service) GetMaxFileSize() int64 {
	return s.maxFileSize
}

// ConfiguredDirectory returns the directory the service is confined to.
func (s *Service) ConfiguredDirectory() string {
	return s.pathValidator.Root()
}

// fileList flattens a mapping into sorted per-file summaries.
func fileList(files map[string]string) []SourceFileInfo {
	list := make([]SourceFileInfo, 0, len(files))
	for p, text := range files {
		lang := string(source.LanguageJava)
		if strings.HasSuffix(p, ".php") {
			lang = string(source.LanguagePHP)
		}
		list = append(list, SourceFileInfo{Path: p, Language: lang, Size: len(text)})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Path < list[j].Path })
	return list
}
