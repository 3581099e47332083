// Package security confines server-supplied file paths to the configured
// document directory. MCP clients hand the server arbitrary path strings;
// everything the server reads or writes must resolve inside that root.
package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathValidator checks paths against a single configured root directory.
type PathValidator struct {
	root string
}

// NewPathValidator creates a validator rooted at dir. The directory does not
// need to exist yet; validation is skipped until it does.
func NewPathValidator(dir string) (*PathValidator, error) {
	if dir == "" {
		return nil, fmt.Errorf("configured directory cannot be empty")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve configured directory: %w", err)
	}
	return &PathValidator{root: abs}, nil
}

// Root returns the configured root directory.
func (v *PathValidator) Root() string {
	return v.root
}

// ValidatePath reports whether path resolves inside the configured root,
// with symlinks followed so a link cannot smuggle a read outside it.
func (v *PathValidator) ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}
	if strings.ContainsRune(path, 0) {
		return fmt.Errorf("path contains a null byte")
	}

	// Until the root exists there is nothing to confine against.
	if _, err := os.Stat(v.root); os.IsNotExist(err) {
		return nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	root := v.root
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	target := filepath.Clean(abs)
	if resolved, err := filepath.EvalSymlinks(target); err == nil {
		target = resolved
	}

	cleanAbs := filepath.Clean(abs)
	pathOK := within(cleanAbs, v.root) || within(cleanAbs, root)
	realOK := within(target, root) || within(target, v.root)
	if !pathOK || !realOK {
		return fmt.Errorf("path is outside configured directory: %s", path)
	}
	return nil
}

// NormalizePath makes a relative path absolute under the root and validates
// the result.
func (v *PathValidator) NormalizePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(v.root, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	if err := v.ValidatePath(abs); err != nil {
		return "", err
	}
	return abs, nil
}

// within reports whether path equals dir or sits below it.
func within(path, dir string) bool {
	if path == dir {
		return true
	}
	if !strings.HasSuffix(dir, string(filepath.Separator)) {
		dir += string(filepath.Separator)
	}
	return strings.HasPrefix(path, dir)
}
