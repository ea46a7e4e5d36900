package fileops

import (
	"path/filepath"

	"github.com/toyz/artist/internal/dialect"
	"github.com/toyz/artist/internal/errors"
	"github.com/toyz/artist/internal/poet"
)

// FileWriter renders poet files in one dialect and writes them to
// <dir>/<package path>/<Name><ext>.
type FileWriter struct {
	dialect dialect.Dialect
	ops     *FileOps
}

// NewFileWriter creates a sink for d
func NewFileWriter(d dialect.Dialect) *FileWriter {
	return &FileWriter{dialect: d, ops: NewFileOps()}
}

// Dialect returns the dialect files are rendered in
func (w *FileWriter) Dialect() dialect.Dialect {
	return w.dialect
}

// Path returns where f is written under dir
func (w *FileWriter) Path(f *poet.File, dir string) string {
	return filepath.Join(w.ops.PathValidator().PackageDir(dir, f.Package), dialect.FileName(w.dialect, f))
}

// Write renders f and writes it unformatted
func (w *FileWriter) Write(f *poet.File, dir string) (string, error) {
	return w.write(f, dir, false)
}

// WriteFormatted renders, formats and writes f
func (w *FileWriter) WriteFormatted(f *poet.File, dir string) (string, error) {
	return w.write(f, dir, true)
}

func (w *FileWriter) write(f *poet.File, dir string, format bool) (string, error) {
	if f == nil || f.Type == nil {
		return "", errors.New(errors.GenerationErrorCode, "nothing to write")
	}
	path := w.Path(f, dir)

	src, err := w.dialect.Render(f)
	if err != nil {
		return "", w.ops.ErrorWrapper().WrapRenderError(path, err)
	}
	if format {
		if src, err = w.dialect.Format(src); err != nil {
			return "", w.ops.ErrorWrapper().WrapFormatError(path, err)
		}
	}

	if err := w.ops.WriteFile(path, []byte(src), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
