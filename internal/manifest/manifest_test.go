package manifest

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/toyz/artist/internal/errors"
	"github.com/toyz/artist/internal/models"
	"github.com/toyz/artist/internal/plugin"
	"github.com/toyz/artist/internal/registry"
)

var expectedWidgets = []models.StencilDeclaration{
	{
		BaseType:         "android.widget.ImageView",
		ConstructorArity: 3,
	},
	{
		BaseType:         "androidx.appcompat.widget.AppCompatEditText",
		ConstructorArity: 3,
		DefaultStyleAttr: "android.R.attr.editTextStyle",
		Traits:           []models.TraitID{"rx.text-input", "rx.view"},
	},
	{
		BaseType:         "android.widget.LinearLayout",
		ConstructorArity: models.DefaultConstructorArity,
		Traits:           []models.TraitID{"rx.view"},
	},
	{
		BaseType:         "androidx.appcompat.widget.AppCompatCheckBox",
		ConstructorArity: 2,
		Traits:           []models.TraitID{"rx.checkable"},
		Name:             "CheckBox",
	},
}

func TestFormatsAreEquivalent(t *testing.T) {
	archive, err := txtar.ParseFile("testdata/equivalent.txtar")
	require.NoError(t, err)
	require.Len(t, archive.Files, 3)

	for _, f := range archive.Files {
		t.Run(f.Name, func(t *testing.T) {
			m, err := Parse(f.Name, f.Data)
			require.NoError(t, err)

			assert.Equal(t, f.Name, m.Name())
			assert.Equal(t, []models.TraitID{"visibility", "suppress-nullability"}, m.GlobalTraits())

			got := m.Stencils()
			for i := range got {
				assert.Equal(t, f.Name, got[i].Source)
				got[i].Source = ""
			}
			assert.Equal(t, expectedWidgets, got)
		})
	}
}

func location(t *testing.T, err error) errors.SourceLocation {
	t.Helper()
	var ae errors.ArtistError
	require.True(t, stderrors.As(err, &ae), "expected an ArtistError, got %T", err)
	return ae.Location()
}

func TestDSLErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		line   int
		column int
	}{
		{"zero arity", "stencil android.widget.ImageView(0)\n", 1, 1},
		{"arity too large", "global visibility\n\nstencil android.widget.ImageView(5)\n", 3, 1},
		{"unqualified type", "stencil android.widget.ImageView\n  stencil ImageView\n", 2, 3},
		{"bad trait id", "stencil android.widget.Button traits Rx.View\n", 1, 1},
		{"bad name", "stencil android.widget.Button as my-button\n", 1, 1},
		{"bad style", "stencil android.widget.Button style \"my style\"\n", 1, 1},
		{"unknown statement", "widget android.widget.Button\n", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDSL("widgets.stencil", []byte(tt.source))
			require.Error(t, err)
			assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))

			loc := location(t, err)
			assert.Equal(t, "widgets.stencil", loc.File)
			assert.Equal(t, tt.line, loc.Line)
			assert.Equal(t, tt.column, loc.Column)
		})
	}
}

func TestDSLSyntaxErrorHasPosition(t *testing.T) {
	_, err := ParseDSL("w.stencil", []byte("stencil android.widget.ImageView(3\n"))
	require.Error(t, err)
	assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))

	loc := location(t, err)
	assert.Equal(t, "w.stencil", loc.File)
	assert.NotZero(t, loc.Line)
}

func TestDSLEmptyAndCommentsOnly(t *testing.T) {
	m, err := ParseDSL("empty.stencil", []byte("# nothing here\n\n"))
	require.NoError(t, err)
	assert.Empty(t, m.Stencils())
	assert.Empty(t, m.GlobalTraits())
}

func TestDSLRepeatedGlobals(t *testing.T) {
	m, err := ParseDSL("g.stencil", []byte("global visibility\nglobal rx.view, visibility\n"))
	require.NoError(t, err)
	assert.Equal(t, []models.TraitID{"visibility", "rx.view", "visibility"}, m.GlobalTraits(),
		"duplicates collapse at resolution time")
}

func TestYAMLErrors(t *testing.T) {
	_, err := ParseYAML("w.yaml", []byte("stencils:\n  - type: android.widget.ImageView\n    constructor: 3\n"))
	require.Error(t, err)
	assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "constructor")
	assert.Equal(t, 3, location(t, err).Line)

	_, err = ParseYAML("w.yaml", []byte("stencils:\n  - type: android.widget.ImageView\n  - type: android.widget.Button\n    constructors: 0\n"))
	require.Error(t, err)
	loc := location(t, err)
	assert.Equal(t, "w.yaml", loc.File)
	assert.Equal(t, 3, loc.Line)
	assert.Contains(t, err.Error(), "stencil #2 (android.widget.Button)")

	_, err = ParseYAML("w.yaml", []byte("stencils: [\n"))
	require.Error(t, err)
	assert.Equal(t, "w.yaml", location(t, err).File)
}

func TestYAMLEmptyDocument(t *testing.T) {
	m, err := ParseYAML("empty.yaml", nil)
	require.NoError(t, err)
	assert.Empty(t, m.Stencils())
}

func TestTOMLErrors(t *testing.T) {
	_, err := ParseTOML("w.toml", []byte("[[stencils]]\ntype = \"android.widget.ImageView\"\nconstructor = 3\n"))
	require.Error(t, err)
	assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "constructor")

	_, err = ParseTOML("w.toml", []byte("[[stencils]]\ntype = @\n"))
	require.Error(t, err)
	loc := location(t, err)
	assert.Equal(t, "w.toml", loc.File)
	assert.Equal(t, 2, loc.Line)

	_, err = ParseTOML("w.toml", []byte("global_traits = [\"Visibility\"]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "global traits")
}

func TestParseRejectsUnknownExtension(t *testing.T) {
	_, err := Parse("widgets.json", []byte("{}"))
	require.Error(t, err)
	assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))
}

func writeManifest(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoaderCachesUntilChanged(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "w.stencil", "stencil android.widget.ImageView(3)\n")

	l := NewLoader()
	first, err := l.Load(path)
	require.NoError(t, err)
	second, err := l.Load(path)
	require.NoError(t, err)
	assert.Same(t, first, second)

	writeManifest(t, dir, "w.stencil", "stencil android.widget.ImageView(3)\nstencil android.widget.Button\n")
	third, err := l.Load(path)
	require.NoError(t, err)
	assert.Len(t, third.Stencils(), 2)
}

func TestLoaderMissingFile(t *testing.T) {
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "missing.stencil"))
	require.Error(t, err)
	assert.Equal(t, errors.FileSystemErrorCode, errors.CodeOf(err))
}

func TestLoaderDiscoverAndExpand(t *testing.T) {
	dir := t.TempDir()
	a := writeManifest(t, dir, "a.stencil", "stencil android.widget.ImageView\n")
	b := writeManifest(t, dir, "nested/b.yaml", "stencils: []\n")
	writeManifest(t, dir, "nested/notes.txt", "ignored")
	writeManifest(t, dir, "build/c.stencil", "stencil android.widget.Button\n")
	extra := writeManifest(t, t.TempDir(), "extra.toml", "")

	l := NewLoader()
	found, err := l.Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, found)

	expanded, err := l.Expand([]string{dir, extra, a})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b, extra}, expanded)

	_, err = l.Discover(a)
	assert.Equal(t, errors.FileSystemErrorCode, errors.CodeOf(err))
}

func TestLoaderExpandPattern(t *testing.T) {
	dir := t.TempDir()
	a := writeManifest(t, dir, "a/x.yaml", "stencils: []\n")
	b := writeManifest(t, dir, "b/c/y.yaml", "stencils: []\n")
	writeManifest(t, dir, "b/z.toml", "")

	expanded, err := NewLoader().Expand([]string{filepath.Join(dir, "**", "*.yaml"), a})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, expanded)

	expanded, err = NewLoader().Expand([]string{filepath.Join(dir, "*.stencil")})
	require.NoError(t, err)
	assert.Empty(t, expanded)
}

func TestLoaderRegister(t *testing.T) {
	dir := t.TempDir()
	a := writeManifest(t, dir, "a.stencil", "global visibility\nstencil android.widget.ImageView(3)\n")
	b := writeManifest(t, dir, "b.yaml", "global_traits: [rx.view]\nstencils:\n  - type: android.widget.Button\n")

	plugins := plugin.NewRegistry()
	require.NoError(t, NewLoader().Register(plugins, a, b))

	stencils := registry.NewStencilRegistry(plugins)
	decls, err := stencils.Stencils()
	require.NoError(t, err)
	require.Len(t, decls, 2)
	assert.Equal(t, a, decls[0].Source)
	assert.Equal(t, b, decls[1].Source)

	globals, err := stencils.GlobalTraits()
	require.NoError(t, err)
	assert.Equal(t, []models.TraitID{"visibility", "rx.view"}, globals)
}

func TestLoaderRegisterStopsOnInvalidManifest(t *testing.T) {
	dir := t.TempDir()
	bad := writeManifest(t, dir, "bad.stencil", "stencil android.widget.ImageView(0)\n")

	plugins := plugin.NewRegistry()
	err := NewLoader().Register(plugins, bad)
	require.Error(t, err)
	assert.Empty(t, plugins.Points())
}
