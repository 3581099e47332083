package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/srclift/pdf-source-extractor/internal/archive"
	"github.com/srclift/pdf-source-extractor/internal/config"
	"github.com/srclift/pdf-source-extractor/internal/pdf"
)

var (
	outputDir    = flag.String("output", "", "Directory to write recovered source files into")
	zipPath      = flag.String("zip", "", "Write recovered files as a zip archive at this path")
	baseDir      = flag.String("basedir", "", "Base directory prefixed to every recovered path")
	language     = flag.String("language", "", "Restrict output to one language: java or php (default: all)")
	outputFormat = flag.String("format", "text", "Output format: text, json")
	verbose      = flag.Bool("verbose", false, "Enable verbose output")
	help         = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: PDF file path required\n\n")
		printUsage()
		os.Exit(1)
	}

	pdfPath := flag.Arg(0)
	if _, err := os.Stat(pdfPath); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: File not found: %s\n", pdfPath)
		os.Exit(1)
	}

	result, err := extractSources(pdfPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error extracting sources: %v\n", err)
		os.Exit(1)
	}

	if *outputDir != "" {
		if err := writeTree(*outputDir, result.Files); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing files: %v\n", err)
			os.Exit(1)
		}
	}
	if *zipPath != "" {
		if err := writeZip(*zipPath, result.Files); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing archive: %v\n", err)
			os.Exit(1)
		}
	}

	if err := outputResults(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error outputting results: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("PDF Extract Sources - recover Java/PHP source files typeset in a PDF document")
	fmt.Println()
	fmt.Println("The document is split at file boundaries (filename captions and top-level type")
	fmt.Println("declarations), each segment is named and rooted under its package-derived")
	fmt.Println("directory, and colliding names receive a numeric suffix.")
	fmt.Println()
	printUsage()
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -output        Directory to write the recovered tree into")
	fmt.Println("  -zip           Write the recovered tree as a zip archive at this path")
	fmt.Println("  -basedir       Base directory prefixed to every recovered path")
	fmt.Println("  -language      Restrict output to one language: java or php (default: all)")
	fmt.Println("  -format        Output format: text (default), json")
	fmt.Println("  -verbose       Enable verbose output")
	fmt.Println("  -help          Show this help message")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  pdf_extract_sources assignment.pdf")
	fmt.Println("  pdf_extract_sources -output ./recovered assignment.pdf")
	fmt.Println("  pdf_extract_sources -zip sources.zip -basedir src -language java assignment.pdf")
	fmt.Println("  pdf_extract_sources -format json assignment.pdf")
}

func printUsage() {
	fmt.Println("USAGE:")
	fmt.Println("  pdf_extract_sources [OPTIONS] <pdf_file>")
}

func extractSources(pdfPath string) (*pdf.PDFExtractSourcesResult, error) {
	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	var serviceLogger *log.Logger
	if *verbose {
		serviceLogger = log.New(os.Stderr, "[extract] ", log.LstdFlags)
	}

	// Confine the service to the document's own directory; the CLI takes an
	// explicit path rather than serving a configured tree.
	service, err := pdf.NewService(config.DefaultMaxFileSize, filepath.Dir(absPath), serviceLogger)
	if err != nil {
		return nil, err
	}

	return service.PDFExtractSources(context.Background(), pdf.PDFExtractSourcesRequest{
		Path:     absPath,
		BaseDir:  *baseDir,
		Language: *language,
	})
}

// writeTree materializes the recovered mapping under dir, creating the
// package directories as needed.
func writeTree(dir string, files map[string]string) error {
	for relPath, content := range files {
		target := filepath.Join(dir, filepath.FromSlash(relPath))
		if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", relPath, err)
		}
		if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", relPath, err)
		}
		if *verbose {
			fmt.Fprintf(os.Stderr, "wrote %s\n", target)
		}
	}
	return nil
}

func writeZip(path string, files map[string]string) error {
	zipped, err := archive.BuildZip(files)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, zipped, 0o644); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}
	if *verbose {
		fmt.Fprintf(os.Stderr, "wrote %s (%d bytes)\n", path, len(zipped))
	}
	return nil
}

func outputResults(result *pdf.PDFExtractSourcesResult) error {
	switch *outputFormat {
	case "json":
		return outputJSON(result)
	case "text":
		return outputText(result)
	default:
		return fmt.Errorf("unsupported output format: %s", *outputFormat)
	}
}

func outputJSON(result *pdf.PDFExtractSourcesResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputText(result *pdf.PDFExtractSourcesResult) error {
	if len(result.FileList) == 0 {
		fmt.Println("No source files detected in the PDF")
		for _, warning := range result.Warnings {
			fmt.Printf("Warning: %s\n", warning)
		}
		return nil
	}

	fmt.Printf("Recovered %d source file(s) from %d page(s)\n", len(result.FileList), result.Pages)
	for _, warning := range result.Warnings {
		fmt.Printf("Warning: %s\n", warning)
	}
	fmt.Println()

	for _, file := range result.FileList {
		fmt.Printf("  %s (%s, %d bytes)\n", file.Path, file.Language, file.Size)
	}

	// Without a destination the content itself goes to stdout.
	if *outputDir == "" && *zipPath == "" {
		for _, file := range result.FileList {
			fmt.Printf("\n--- %s ---\n%s", file.Path, result.Files[file.Path])
		}
	}

	return nil
}

func init() {
	flag.Usage = func() {
		printHelp()
	}
}
