package utils

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileFilter defines a function that determines whether a file should be processed
type FileFilter func(path string, info os.DirEntry) bool

// DirectoryFilter defines a function that determines whether a directory should be processed
type DirectoryFilter func(path string, info os.DirEntry) bool

// FileWalkOptions configures file walking behavior
type FileWalkOptions struct {
	FileFilter      FileFilter
	DirectoryFilter DirectoryFilter
	SkipErrors      bool
}

// FileProcessor finds manifests and generated sources on disk
type FileProcessor struct{}

// NewFileProcessor creates a new file processor
func NewFileProcessor() *FileProcessor {
	return &FileProcessor{}
}

// ExtensionFilter matches regular files ending in one of exts. Matching is
// case-insensitive; exts include the leading dot.
func ExtensionFilter(exts ...string) FileFilter {
	return func(path string, info os.DirEntry) bool {
		if info.IsDir() {
			return false
		}
		ext := strings.ToLower(filepath.Ext(info.Name()))
		for _, e := range exts {
			if ext == strings.ToLower(e) {
				return true
			}
		}
		return false
	}
}

// FirstLineFilter matches files whose first line equals line, ignoring
// trailing whitespace. Unreadable files do not match.
func FirstLineFilter(line string) FileFilter {
	return func(path string, info os.DirEntry) bool {
		if info.IsDir() {
			return false
		}
		first, err := ReadFirstLine(path)
		return err == nil && strings.TrimRight(first, " \t\r") == line
	}
}

// AllOf matches files accepted by every filter
func AllOf(filters ...FileFilter) FileFilter {
	return func(path string, info os.DirEntry) bool {
		for _, f := range filters {
			if !f(path, info) {
				return false
			}
		}
		return true
	}
}

// DefaultDirectoryFilter skips VCS metadata, hidden directories and build
// output that never holds manifests.
func DefaultDirectoryFilter() DirectoryFilter {
	skipDirs := map[string]bool{
		"node_modules": true,
		"build":        true,
		"dist":         true,
		"target":       true,
	}

	return func(path string, info os.DirEntry) bool {
		if !info.IsDir() {
			return true
		}

		name := info.Name()

		// Skip hidden directories
		if strings.HasPrefix(name, ".") && name != "." && name != ".." {
			return false
		}

		return !skipDirs[name]
	}
}

// WalkFiles walks through files in a directory tree with filtering. The
// result is sorted.
func (fp *FileProcessor) WalkFiles(rootDir string, options FileWalkOptions) ([]string, error) {
	var matchedFiles []string

	err := filepath.WalkDir(rootDir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			if options.SkipErrors {
				return nil
			}
			return err
		}

		// The root itself is always entered
		if entry.IsDir() {
			if path != rootDir && options.DirectoryFilter != nil && !options.DirectoryFilter(path, entry) {
				return filepath.SkipDir
			}
			return nil
		}

		if options.FileFilter == nil || options.FileFilter(path, entry) {
			matchedFiles = append(matchedFiles, path)
		}
		return nil
	})

	sort.Strings(matchedFiles)
	return matchedFiles, err
}

// RemoveEmptyDirs removes directories under rootDir, deepest first, that
// are left empty. rootDir itself is kept.
func (fp *FileProcessor) RemoveEmptyDirs(rootDir string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(rootDir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() && path != rootDir {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Longer paths are deeper
	sort.Slice(dirs, func(i, j int) bool { return len(dirs[i]) > len(dirs[j]) })

	var removed []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return removed, err
		}
		if len(entries) > 0 {
			continue
		}
		if err := os.Remove(dir); err != nil {
			return removed, err
		}
		removed = append(removed, dir)
	}
	return removed, nil
}

// ReadFirstLine returns the first line of path without its line ending
func ReadFirstLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	return "", scanner.Err()
}
