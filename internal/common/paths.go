package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CleanPath sanitizes a file path to prevent directory traversal attacks
func CleanPath(path string) (string, error) {
	// Clean the path to remove any ../ or ./ sequences
	cleaned := filepath.Clean(path)

	// Check for suspicious patterns
	if strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("invalid path: contains directory traversal")
	}

	// Convert to absolute path if needed
	if !filepath.IsAbs(cleaned) {
		abs, err := filepath.Abs(cleaned)
		if err != nil {
			return "", fmt.Errorf("failed to resolve absolute path: %w", err)
		}
		cleaned = abs
	}

	return cleaned, nil
}

// ResolveDir makes path absolute and checks that it is an existing
// directory. Relative paths may climb out of the working directory.
func ResolveDir(path string) (string, error) {
	if path == "" {
		path = "."
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	cleaned, err := CleanPath(abs)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(cleaned)
	if err != nil {
		return "", fmt.Errorf("cannot access %s: %w", cleaned, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", cleaned)
	}
	return cleaned, nil
}
