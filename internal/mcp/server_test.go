package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/srclift/pdf-source-extractor/internal/config"
	"github.com/srclift/pdf-source-extractor/internal/pdf"
)

func testConfig(tempDir string) *config.Config {
	return &config.Config{
		Mode:         "stdio",
		Host:         "127.0.0.1",
		Port:         8080,
		PDFDirectory: tempDir,
		Version:      "1.0.0",
		ServerName:   "test-server",
		LogLevel:     "info",
		MaxFileSize:  1024 * 1024,
	}
}

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	tempDir := t.TempDir()
	cfg := testConfig(tempDir)

	pdfService, err := pdf.NewService(cfg.MaxFileSize, cfg.PDFDirectory, nil)
	if err != nil {
		t.Fatalf("Failed to create PDF service: %v", err)
	}
	server, err := NewServer(cfg, pdfService)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	return server, tempDir
}

func TestNewServer(t *testing.T) {
	tempDir := t.TempDir()
	pdfService, err := pdf.NewService(1024*1024, tempDir, nil)
	if err != nil {
		t.Fatalf("Failed to create PDF service: %v", err)
	}

	tests := []struct {
		name        string
		config      *config.Config
		service     *pdf.Service
		expectError bool
	}{
		{
			name:        "valid stdio mode config",
			config:      testConfig(tempDir),
			service:     pdfService,
			expectError: false,
		},
		{
			name: "valid server mode config",
			config: func() *config.Config {
				cfg := testConfig(tempDir)
				cfg.Mode = "server"
				return cfg
			}(),
			service:     pdfService,
			expectError: false,
		},
		{
			name:        "nil service",
			config:      testConfig(tempDir),
			service:     nil,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, err := NewServer(tt.config, tt.service)

			if tt.expectError && err == nil {
				t.Errorf("expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if !tt.expectError {
				if server == nil {
					t.Fatal("server should not be nil")
				}
				if server.config != tt.config {
					t.Error("server config not set correctly")
				}
				if server.pdfService != tt.service {
					t.Error("server pdfService not set correctly")
				}
				if server.mcpServer == nil {
					t.Error("mcpServer should be initialized")
				}
			}
		})
	}
}

func TestServer_HandlePDFValidateFile(t *testing.T) {
	server, tempDir := newTestServer(t)

	// Not a real PDF, just bytes with a .pdf name
	testFile := filepath.Join(tempDir, "test.pdf")
	if err := os.WriteFile(testFile, make([]byte, 1024), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"path": testFile,
			},
		},
	}

	result, err := server.handlePDFValidateFile(context.Background(), request)
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if result == nil {
		t.Fatal("result should not be nil")
	}

	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "PDF validation failed") {
		t.Errorf("expected validation to fail, got: %s", resultText)
	}
}

func TestServer_HandlePDFValidateFile_ValidHeader(t *testing.T) {
	server, tempDir := newTestServer(t)

	testFile := filepath.Join(tempDir, "real.pdf")
	if err := os.WriteFile(testFile, []byte("%PDF-1.4\ncontent"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"path": testFile,
			},
		},
	}

	result, err := server.handlePDFValidateFile(context.Background(), request)
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "valid and readable") {
		t.Errorf("expected valid result, got: %s", resultText)
	}
}

func TestServer_InvalidArguments(t *testing.T) {
	server, _ := newTestServer(t)

	emptyRequest := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{},
		},
	}

	handlers := []struct {
		name    string
		handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
	}{
		{"PDFExtractSources", server.handlePDFExtractSources},
		{"PDFExtractArchive", server.handlePDFExtractArchive},
		{"PDFValidateFile", server.handlePDFValidateFile},
	}

	for _, h := range handlers {
		t.Run(h.name, func(t *testing.T) {
			result, err := h.handler(context.Background(), emptyRequest)
			if err != nil {
				t.Errorf("handler should not return error, got: %v", err)
			}
			if result == nil {
				t.Fatal("result should not be nil")
			}
			if !result.IsError {
				t.Errorf("expected error result for missing arguments")
			}
		})
	}
}

func TestServer_HandlePDFExtractSources_OutsideDirectory(t *testing.T) {
	server, _ := newTestServer(t)

	outside := filepath.Join(t.TempDir(), "escape.pdf")
	if err := os.WriteFile(outside, []byte("%PDF-1.4\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"path": outside,
			},
		},
	}

	result, err := server.handlePDFExtractSources(context.Background(), request)
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if !result.IsError {
		t.Errorf("expected error result for a path outside the configured directory")
	}
}

func TestFormatExtractSourcesResult(t *testing.T) {
	server, _ := newTestServer(t)

	extractResult := &pdf.PDFExtractSourcesResult{
		Path:  "/docs/assignment.pdf",
		Pages: 3,
		Files: map[string]string{
			"com/example/Animal.java": "package com.example;\npublic class Animal {\n}\n",
		},
		FileList: []pdf.SourceFileInfo{
			{Path: "com/example/Animal.java", Language: "java", Size: 45},
		},
		Segments:   1,
		ByLanguage: map[string]int{"java": 1},
		Warnings:   []string{"1 segment(s) dropped: no filename could be resolved"},
	}

	formatted := server.formatExtractSourcesResult(extractResult)

	for _, want := range []string{
		"Extracted 1 source file(s)",
		"/docs/assignment.pdf",
		"java: 1 segment(s)",
		"Warning: 1 segment(s) dropped",
		"com/example/Animal.java",
		"--- com/example/Animal.java ---",
		"public class Animal {",
	} {
		if !strings.Contains(formatted, want) {
			t.Errorf("formatted result missing %q\nGot:\n%s", want, formatted)
		}
	}
}

func TestServer_RunServerModeShutdown(t *testing.T) {
	server, _ := newTestServer(t)
	server.config.Mode = "server"
	server.config.Port = 0 // any free port

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := server.Run(ctx); err != nil {
		t.Errorf("Run() with cancelled context should shut down cleanly, got: %v", err)
	}
}

// Helper function to extract text from a CallToolResult
func extractTextFromResult(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}

	for _, content := range result.Content {
		if textContent, ok := content.(mcp.TextContent); ok {
			return textContent.Text
		}
		if textContentPtr, ok := content.(*mcp.TextContent); ok {
			return textContentPtr.Text
		}
	}

	return ""
}
