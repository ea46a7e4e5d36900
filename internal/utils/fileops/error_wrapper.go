package fileops

import (
	"path/filepath"

	"github.com/toyz/artist/internal/errors"
)

// ErrorWrapper provides consistent error wrapping for file operations
type ErrorWrapper struct{}

// NewErrorWrapper creates a new ErrorWrapper instance
func NewErrorWrapper() *ErrorWrapper {
	return &ErrorWrapper{}
}

// WrapFileReadError wraps file reading errors with context
func (ew *ErrorWrapper) WrapFileReadError(filePath string, err error) error {
	return errors.WrapFileSystemError("read", filePath, err)
}

// WrapFileWriteError wraps file writing errors with context
func (ew *ErrorWrapper) WrapFileWriteError(filePath string, err error) error {
	return errors.WrapFileSystemError("write", filePath, err)
}

// WrapDirectoryReadError wraps directory reading errors with context
func (ew *ErrorWrapper) WrapDirectoryReadError(dirPath string, err error) error {
	return errors.WrapFileSystemError("read directory", dirPath, err)
}

// WrapDirectoryCreateError wraps directory creation errors with context
func (ew *ErrorWrapper) WrapDirectoryCreateError(dirPath string, err error) error {
	return errors.WrapFileSystemError("create directory", dirPath, err)
}

// WrapFileRemovalError wraps file removal errors with context
func (ew *ErrorWrapper) WrapFileRemovalError(filePath string, err error) error {
	return errors.WrapFileSystemError("remove", filePath, err)
}

// WrapRenderError wraps a failure to render a file before writing it
func (ew *ErrorWrapper) WrapRenderError(filePath string, err error) error {
	return errors.Wrap(errors.GenerationErrorCode, "failed to render "+filepath.Base(filePath), err).
		WithContext("file", filePath)
}

// WrapFormatError wraps pretty-printer failures with the file name
func (ew *ErrorWrapper) WrapFormatError(filePath string, err error) error {
	return errors.WrapFormatError(filepath.Base(filePath), err)
}
