package cli

import (
	"github.com/toyz/artist/internal/dialect"
	"github.com/toyz/artist/internal/utils"
	"github.com/toyz/artist/internal/utils/fileops"
)

// Cleaner handles cleaning up generated files. Only files whose first line
// is the generated header are touched.
type Cleaner struct {
	processor *utils.FileProcessor
	ops       *fileops.FileOps
	filter    utils.FileFilter
}

// NewCleaner creates a cleaner for sources with the given extensions
func NewCleaner(extensions ...string) *Cleaner {
	return &Cleaner{
		processor: utils.NewFileProcessor(),
		ops:       fileops.NewFileOps(),
		filter: utils.AllOf(
			utils.ExtensionFilter(extensions...),
			utils.FirstLineFilter(dialect.GeneratedHeader),
		),
	}
}

// GeneratedFiles lists the generated files under dir in lexical order. A
// missing dir holds none.
func (c *Cleaner) GeneratedFiles(dir string) ([]string, error) {
	if !c.ops.IsDir(dir) {
		return nil, nil
	}
	files, err := c.processor.WalkFiles(dir, utils.FileWalkOptions{FileFilter: c.filter})
	if err != nil {
		return nil, c.ops.ErrorWrapper().WrapDirectoryReadError(dir, err)
	}
	return files, nil
}

// Clean removes the generated files under dir, then the package directories
// left empty. It returns the removed files.
func (c *Cleaner) Clean(dir string) ([]string, error) {
	files, err := c.GeneratedFiles(dir)
	if err != nil {
		return nil, err
	}

	removed := make([]string, 0, len(files))
	for _, f := range files {
		if err := c.ops.RemoveFile(f); err != nil {
			return removed, err
		}
		removed = append(removed, f)
	}

	if len(removed) > 0 {
		if _, err := c.processor.RemoveEmptyDirs(dir); err != nil {
			return removed, c.ops.ErrorWrapper().WrapFileRemovalError(dir, err)
		}
	}
	return removed, nil
}
