package fileops

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileOps provides a unified interface for common file operations
// combining path validation and error handling
type FileOps struct {
	pathValidator *PathValidator
	errorWrapper  *ErrorWrapper
}

// NewFileOps creates a new FileOps instance with all components
func NewFileOps() *FileOps {
	return &FileOps{
		pathValidator: NewPathValidator(),
		errorWrapper:  NewErrorWrapper(),
	}
}

// PathValidator returns the path validator instance
func (fo *FileOps) PathValidator() *PathValidator {
	return fo.pathValidator
}

// ErrorWrapper returns the error wrapper instance
func (fo *FileOps) ErrorWrapper() *ErrorWrapper {
	return fo.errorWrapper
}

// ReadFile reads a file and returns its contents as a string
func (fo *FileOps) ReadFile(filePath string) (string, error) {
	cleanPath, err := fo.pathValidator.ValidateAndClean(filePath)
	if err != nil {
		return "", fo.errorWrapper.WrapFileReadError(filePath, err)
	}

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return "", fo.errorWrapper.WrapFileReadError(cleanPath, err)
	}
	return string(content), nil
}

// EnsureDir creates dir and its parents. It is idempotent but fails when
// dir exists and is not a directory.
func (fo *FileOps) EnsureDir(dir string) error {
	cleanPath, err := fo.pathValidator.ValidateAndCleanOptional(dir)
	if err != nil {
		return fo.errorWrapper.WrapDirectoryCreateError(dir, err)
	}

	if info, err := os.Stat(cleanPath); err == nil && !info.IsDir() {
		return fo.errorWrapper.WrapDirectoryCreateError(cleanPath, fmt.Errorf("%s exists and is not a directory", cleanPath))
	}
	if err := os.MkdirAll(cleanPath, 0o755); err != nil {
		return fo.errorWrapper.WrapDirectoryCreateError(cleanPath, err)
	}
	return nil
}

// WriteFile writes content to a file, creating its directory first
func (fo *FileOps) WriteFile(filePath string, content []byte, perm os.FileMode) error {
	cleanPath, err := fo.pathValidator.ValidateAndCleanOptional(filePath)
	if err != nil {
		return fo.errorWrapper.WrapFileWriteError(filePath, err)
	}
	if err := fo.EnsureDir(filepath.Dir(cleanPath)); err != nil {
		return err
	}

	if err := os.WriteFile(cleanPath, content, perm); err != nil {
		return fo.errorWrapper.WrapFileWriteError(cleanPath, err)
	}
	return nil
}

// RemoveFile removes a file with path validation and error handling
func (fo *FileOps) RemoveFile(filePath string) error {
	cleanPath, err := fo.pathValidator.ValidateAndClean(filePath)
	if err != nil {
		return fo.errorWrapper.WrapFileRemovalError(filePath, err)
	}

	if err := os.Remove(cleanPath); err != nil {
		return fo.errorWrapper.WrapFileRemovalError(cleanPath, err)
	}
	return nil
}

// ReadDir reads a directory with path validation and error handling
func (fo *FileOps) ReadDir(dirPath string) ([]os.DirEntry, error) {
	cleanPath, err := fo.pathValidator.ValidateAndClean(dirPath)
	if err != nil {
		return nil, fo.errorWrapper.WrapDirectoryReadError(dirPath, err)
	}

	entries, err := os.ReadDir(cleanPath)
	if err != nil {
		return nil, fo.errorWrapper.WrapDirectoryReadError(cleanPath, err)
	}
	return entries, nil
}

// Exists checks if a path exists using the path validator
func (fo *FileOps) Exists(path string) bool {
	return fo.pathValidator.Exists(path)
}

// IsDir checks if a path is a directory using the path validator
func (fo *FileOps) IsDir(path string) bool {
	return fo.pathValidator.IsDir(path)
}

// IsFile checks if a path is a regular file using the path validator
func (fo *FileOps) IsFile(path string) bool {
	return fo.pathValidator.IsFile(path)
}
