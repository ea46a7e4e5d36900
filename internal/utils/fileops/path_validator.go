package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathValidator provides centralized path validation and cleaning functionality
type PathValidator struct{}

// NewPathValidator creates a new PathValidator instance
func NewPathValidator() *PathValidator {
	return &PathValidator{}
}

// ValidateAndClean cleans a path that must already exist
func (pv *PathValidator) ValidateAndClean(path string) (string, error) {
	cleanPath, err := pv.ValidateAndCleanOptional(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(cleanPath); os.IsNotExist(err) {
		return "", fmt.Errorf("path does not exist: %s", cleanPath)
	}
	return cleanPath, nil
}

// ValidateAndCleanOptional cleans a path that may not exist yet
func (pv *PathValidator) ValidateAndCleanOptional(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	if strings.ContainsRune(path, 0) {
		return "", fmt.Errorf("path contains a NUL byte: %q", path)
	}
	return filepath.Clean(path), nil
}

// PackageDir returns the directory a package's sources live in under root
func (pv *PathValidator) PackageDir(root, pkg string) string {
	if pkg == "" {
		return filepath.Clean(root)
	}
	return filepath.Join(root, filepath.FromSlash(strings.ReplaceAll(pkg, ".", "/")))
}

// Exists checks if a path exists
func (pv *PathValidator) Exists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// IsDir checks if a path exists and is a directory
func (pv *PathValidator) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsFile checks if a path exists and is a regular file
func (pv *PathValidator) IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
