package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/mod/sumdb/dirhash"

	"github.com/toyz/artist/internal/errors"
	"github.com/toyz/artist/internal/models"
)

// CheckResult compares the generated files on disk with a fresh run
type CheckResult struct {
	OutputDir string
	// Expected and Actual are dirhash digests of the fresh and on-disk trees.
	Expected string
	Actual   string
	// Paths relative to OutputDir, slash separated
	Missing []string
	Changed []string
	Extra   []string
	Summary *models.GenerationSummary
}

// UpToDate reports whether the output directory matches a fresh run
func (r *CheckResult) UpToDate() bool {
	return r.Expected == r.Actual
}

// Checker regenerates into a scratch directory and compares the result with
// the configured output directory.
type Checker struct {
	generator *Generator
	cleaner   *Cleaner
}

// NewChecker creates a checker driving g
func NewChecker(g *Generator) *Checker {
	return &Checker{
		generator: g,
		cleaner:   NewCleaner(g.Dialects().Extensions()...),
	}
}

// Check generates cfg into a temporary directory and compares it with the
// generated files under cfg.OutputDir. Hand-written files next to them are
// ignored.
func (c *Checker) Check(cfg *Config) (*CheckResult, error) {
	scratch, err := os.MkdirTemp("", "artist-check-")
	if err != nil {
		return nil, errors.WrapFileSystemError("create temp dir", os.TempDir(), err)
	}
	defer os.RemoveAll(scratch)

	fresh := *cfg
	fresh.OutputDir = scratch
	summary, err := c.generator.Run(&fresh)
	if err != nil {
		return nil, err
	}

	expectedFiles, err := c.cleaner.GeneratedFiles(scratch)
	if err != nil {
		return nil, err
	}
	actualFiles, err := c.cleaner.GeneratedFiles(cfg.OutputDir)
	if err != nil {
		return nil, err
	}

	expected, err := relativeTo(scratch, expectedFiles)
	if err != nil {
		return nil, err
	}
	actual, err := relativeTo(cfg.OutputDir, actualFiles)
	if err != nil {
		return nil, err
	}

	result := &CheckResult{OutputDir: cfg.OutputDir, Summary: summary}
	if result.Expected, err = dirhash.Hash1(expected, opener(scratch)); err != nil {
		return nil, errors.WrapFileSystemError("hash", scratch, err)
	}
	if result.Actual, err = dirhash.Hash1(actual, opener(cfg.OutputDir)); err != nil {
		return nil, errors.WrapFileSystemError("hash", cfg.OutputDir, err)
	}
	if result.UpToDate() {
		return result, nil
	}

	onDisk := make(map[string]bool, len(actual))
	for _, name := range actual {
		onDisk[name] = true
	}
	for _, name := range expected {
		if !onDisk[name] {
			result.Missing = append(result.Missing, name)
			continue
		}
		delete(onDisk, name)
		same, err := sameContent(filepath.Join(scratch, filepath.FromSlash(name)), filepath.Join(cfg.OutputDir, filepath.FromSlash(name)))
		if err != nil {
			return nil, err
		}
		if !same {
			result.Changed = append(result.Changed, name)
		}
	}
	for _, name := range actual {
		if onDisk[name] {
			result.Extra = append(result.Extra, name)
		}
	}
	return result, nil
}

func relativeTo(root string, files []string) ([]string, error) {
	out := make([]string, len(files))
	for i, f := range files {
		rel, err := filepath.Rel(root, f)
		if err != nil {
			return nil, errors.WrapFileSystemError("relativize", f, err)
		}
		out[i] = filepath.ToSlash(rel)
	}
	return out, nil
}

func opener(root string) func(string) (io.ReadCloser, error) {
	return func(name string) (io.ReadCloser, error) {
		return os.Open(filepath.Join(root, filepath.FromSlash(name)))
	}
}

func sameContent(a, b string) (bool, error) {
	left, err := os.ReadFile(a)
	if err != nil {
		return false, errors.WrapFileSystemError("read", a, err)
	}
	right, err := os.ReadFile(b)
	if err != nil {
		return false, errors.WrapFileSystemError("read", b, err)
	}
	return bytes.Equal(left, right), nil
}
