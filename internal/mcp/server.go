// Package mcp exposes the source-extraction service over the Model Context
// Protocol. Transport, tool registration and result formatting live here;
// the extraction semantics live in internal/pdf.
package mcp

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/srclift/pdf-source-extractor/internal/config"
	"github.com/srclift/pdf-source-extractor/internal/pdf"
)

// Server represents the MCP server instance.
type Server struct {
	config     *config.Config
	pdfService *pdf.Service
	mcpServer  *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer(cfg *config.Config, pdfService *pdf.Service) (*Server, error) {
	if pdfService == nil {
		return nil, fmt.Errorf("pdfService cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		config:     cfg,
		pdfService: pdfService,
		mcpServer:  mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	extractSourcesTool := mcp.NewTool(
		"pdf_extract_sources",
		mcp.WithDescription("Recover the Java/PHP source files typeset in a PDF document, "+
			"split at file boundaries and rooted under package-derived directories"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
		mcp.WithString("base_dir",
			mcp.Description("Optional base directory prefixed to every recovered path"),
		),
		mcp.WithString("language",
			mcp.Description("Restrict output to 'java' or 'php' (default: all)"),
		),
	)
	s.mcpServer.AddTool(extractSourcesTool, s.handlePDFExtractSources)

	extractArchiveTool := mcp.NewTool(
		"pdf_extract_archive",
		mcp.WithDescription("Recover the source files typeset in a PDF and write them as a zip archive"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
		mcp.WithString("output_path",
			mcp.Required(),
			mcp.Description("Path of the zip archive to write"),
		),
		mcp.WithString("base_dir",
			mcp.Description("Optional base directory prefixed to every recovered path"),
		),
		mcp.WithString("language",
			mcp.Description("Restrict output to 'java' or 'php' (default: all)"),
		),
	)
	s.mcpServer.AddTool(extractArchiveTool, s.handlePDFExtractArchive)

	validateFileTool := mcp.NewTool(
		"pdf_validate_file",
		mcp.WithDescription("Validate if a file is a readable PDF"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(validateFileTool, s.handlePDFValidateFile)
}

// Handler functions

func (s *Server) handlePDFExtractSources(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	args := request.GetArguments()

	req := pdf.PDFExtractSourcesRequest{Path: path}
	if baseDir, ok := args["base_dir"].(string); ok {
		req.BaseDir = baseDir
	}
	if language, ok := args["language"].(string); ok {
		req.Language = language
	}

	result, err := s.pdfService.PDFExtractSources(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatExtractSourcesResult(result)), nil
}

func (s *Server) handlePDFExtractArchive(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	outputPath, err := request.RequireString("output_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	args := request.GetArguments()

	req := pdf.PDFExtractArchiveRequest{Path: path, OutputPath: outputPath}
	if baseDir, ok := args["base_dir"].(string); ok {
		req.BaseDir = baseDir
	}
	if language, ok := args["language"].(string); ok {
		req.Language = language
	}

	result, err := s.pdfService.PDFExtractArchive(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Archive written: %s\n", result.OutputPath)
	responseText += fmt.Sprintf("Files: %d\n", result.FileCount)
	responseText += fmt.Sprintf("Size: %d bytes\n", result.ArchiveSize)
	for _, warning := range result.Warnings {
		responseText += fmt.Sprintf("Warning: %s\n", warning)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handlePDFValidateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.pdfService.PDFValidateFile(pdf.PDFValidateFileRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.Valid {
		responseText = fmt.Sprintf("PDF file %s is valid and readable", result.Path)
	} else {
		responseText = fmt.Sprintf("PDF validation failed for %s: %s", result.Path, result.Message)
	}

	return mcp.NewToolResultText(responseText), nil
}

// formatExtractSourcesResult renders an extraction result for tool output:
// the counts, the recovered tree, then every file's content.
func (s *Server) formatExtractSourcesResult(result *pdf.PDFExtractSourcesResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Extracted %d source file(s) from %s (%d pages)\n",
		len(result.Files), result.Path, result.Pages)

	if len(result.ByLanguage) > 0 {
		langs := make([]string, 0, len(result.ByLanguage))
		for lang := range result.ByLanguage {
			langs = append(langs, lang)
		}
		sort.Strings(langs)
		for _, lang := range langs {
			fmt.Fprintf(&b, "  %s: %d segment(s)\n", lang, result.ByLanguage[lang])
		}
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(&b, "Warning: %s\n", warning)
	}

	if len(result.FileList) > 0 {
		b.WriteString("\nFiles:\n")
		for _, file := range result.FileList {
			fmt.Fprintf(&b, "  %s (%d bytes)\n", file.Path, file.Size)
		}
		for _, file := range result.FileList {
			fmt.Fprintf(&b, "\n--- %s ---\n%s", file.Path, result.Files[file.Path])
		}
	}

	return b.String()
}

// Run starts the MCP server in the configured mode.
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode.
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting PDF source extractor in stdio mode")
		log.Printf("PDF directory: %s", s.config.PDFDirectory)
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode runs the server over streamable HTTP.
func (s *Server) runServerMode(ctx context.Context) error {
	httpServer := server.NewStreamableHTTPServer(s.mcpServer)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting PDF source extractor on %s", s.config.Address())
		errCh <- httpServer.Start(s.config.Address())
	}()

	select {
	case <-ctx.Done():
		return httpServer.Shutdown(context.Background())
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to serve HTTP: %w", err)
		}
		return nil
	}
}
