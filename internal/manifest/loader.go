package manifest

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/toyz/artist/internal/errors"
	"github.com/toyz/artist/internal/plugin"
	"github.com/toyz/artist/internal/utils"
	"github.com/toyz/artist/internal/utils/fileops"
)

// ParseFunc parses manifest bytes read from path
type ParseFunc func(path string, data []byte) (*Manifest, error)

// parsers maps lower-case file extensions to their parser
var parsers = map[string]ParseFunc{
	".yaml":    ParseYAML,
	".yml":     ParseYAML,
	".toml":    ParseTOML,
	".stencil": ParseDSL,
}

// Extensions lists the recognised manifest extensions
func Extensions() []string {
	return []string{".stencil", ".toml", ".yaml", ".yml"}
}

// Parse parses data with the parser matching path's extension
func Parse(path string, data []byte) (*Manifest, error) {
	ext := strings.ToLower(filepath.Ext(path))
	parse, ok := parsers[ext]
	if !ok {
		return nil, errors.ConfigurationError(path, fmt.Sprintf("unsupported manifest extension %q", ext)).
			WithSuggestion("use one of " + strings.Join(Extensions(), ", "))
	}
	return parse(path, data)
}

// Loader reads manifests from disk. Parsed manifests are cached until the
// file changes.
type Loader struct {
	ops       *fileops.FileOps
	processor *utils.FileProcessor
	cache     *utils.FileCache[*Manifest]
}

// NewLoader creates a loader with an empty cache
func NewLoader() *Loader {
	return &Loader{
		ops:       fileops.NewFileOps(),
		processor: utils.NewFileProcessor(),
		cache:     utils.NewFileCache[*Manifest](),
	}
}

// Load reads and parses the manifest at path
func (l *Loader) Load(path string) (*Manifest, error) {
	return l.cache.Load(path, func() (*Manifest, error) {
		content, err := l.ops.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return Parse(path, []byte(content))
	})
}

// LoadAll loads every path, stopping at the first failure
func (l *Loader) LoadAll(paths []string) ([]*Manifest, error) {
	out := make([]*Manifest, 0, len(paths))
	for _, p := range paths {
		m, err := l.Load(p)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Discover lists the manifests under dir in lexical order. Hidden and
// build output directories are skipped.
func (l *Loader) Discover(dir string) ([]string, error) {
	if !l.ops.IsDir(dir) {
		return nil, errors.WrapFileSystemError("read directory", dir, fmt.Errorf("not a directory"))
	}
	paths, err := l.processor.WalkFiles(dir, utils.FileWalkOptions{
		FileFilter:      utils.ExtensionFilter(Extensions()...),
		DirectoryFilter: utils.DefaultDirectoryFilter(),
	})
	if err != nil {
		return nil, errors.WrapFileSystemError("walk", dir, err)
	}
	return paths, nil
}

// Expand resolves manifest arguments: directories are replaced by the
// manifests they contain, glob patterns (with ** for any depth) by their
// matches, files are kept as given.
func (l *Loader) Expand(args []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, arg := range args {
		paths := []string{arg}
		switch {
		case l.ops.IsDir(arg):
			found, err := l.Discover(arg)
			if err != nil {
				return nil, err
			}
			paths = found
		case isPattern(arg):
			matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
			if err != nil {
				return nil, errors.ConfigurationError(arg, "invalid manifest pattern").WithCause(err)
			}
			sort.Strings(matches)
			paths = matches
		}
		for _, p := range paths {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out, nil
}

// Register loads each manifest and registers it as a stencil provider
func (l *Loader) Register(r *plugin.Registry, paths ...string) error {
	manifests, err := l.LoadAll(paths)
	if err != nil {
		return err
	}
	for _, m := range manifests {
		if err := r.Provide(plugin.StencilProviderPoint, m); err != nil {
			return err
		}
	}
	return nil
}

func isPattern(arg string) bool {
	return strings.ContainsAny(arg, "*?[{")
}
