package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/artist/internal/dialect"
	"github.com/toyz/artist/internal/errors"
	"github.com/toyz/artist/internal/models"
	"github.com/toyz/artist/internal/plugin"
	"github.com/toyz/artist/internal/poet"
	"github.com/toyz/artist/internal/utils"
)

const widgetsManifest = `# widgets used by the sample app
global visibility
stencil android.widget.ImageView(3)
stencil androidx.appcompat.widget.AppCompatCheckBox(2) traits rx.checkable as CheckBox
`

type fixture struct {
	cfg    *Config
	out    *bytes.Buffer
	errOut *bytes.Buffer
	gen    *Generator
}

func newFixture(t *testing.T, manifest string) *fixture {
	t.Helper()
	root := t.TempDir()
	manifests := filepath.Join(root, "stencils")
	require.NoError(t, os.MkdirAll(manifests, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(manifests, "widgets.stencil"), []byte(manifest), 0o644))

	var out, errOut bytes.Buffer
	diagnostics := utils.NewDiagnosticSystem(utils.DiagnosticVerbose).WithOutput(&out, &errOut)
	return &fixture{
		cfg: &Config{
			OutputDir:      filepath.Join(root, "generated"),
			PackageName:    "com.example.app",
			ViewNamePrefix: "My",
			FormatSource:   true,
			Dialect:        "java",
			Manifests:      []string{manifests},
		},
		out:    &out,
		errOut: &errOut,
		gen:    NewGenerator(diagnostics),
	}
}

func (f *fixture) path(parts ...string) string {
	return filepath.Join(append([]string{f.cfg.OutputDir, "com", "example", "app"}, parts...)...)
}

func TestGenerator_Run(t *testing.T) {
	f := newFixture(t, widgetsManifest)

	summary, err := f.gen.Run(f.cfg)
	require.NoError(t, err)
	assert.Equal(t, "java", summary.Dialect)
	require.Len(t, summary.Files, 2)
	assert.Equal(t, f.path("MyImageView.java"), summary.Files[0].Path)
	assert.Equal(t, f.path("CheckBox.java"), summary.Files[1].Path)
	assert.Equal(t, []models.TraitID{"visibility"}, summary.Files[0].Applied)
	assert.Equal(t, []models.TraitID{"visibility", "rx.checkable"}, summary.Files[1].Applied)

	src, err := os.ReadFile(f.path("MyImageView.java"))
	require.NoError(t, err)
	first, err := utils.ReadFirstLine(f.path("MyImageView.java"))
	require.NoError(t, err)
	assert.Equal(t, dialect.GeneratedHeader, first)
	assert.Contains(t, string(src), "package com.example.app;")
	assert.Contains(t, string(src), "class MyImageView extends ImageView")
	assert.Contains(t, string(src), "isVisible()")

	f.gen.ReportSummary(summary)
	assert.Contains(t, f.out.String(), "Files generated: 2")
	assert.Contains(t, f.out.String(), "Generated Files:\n")
	assert.Contains(t, f.out.String(), "✓ android.widget.ImageView -> "+f.path("MyImageView.java"))
}

func TestGenerator_RunKotlin(t *testing.T) {
	f := newFixture(t, widgetsManifest)
	f.cfg.Dialect = "kotlin"

	summary, err := f.gen.Run(f.cfg)
	require.NoError(t, err)
	assert.Equal(t, "kotlin", summary.Dialect)
	assert.FileExists(t, f.path("MyImageView.kt"))
	assert.FileExists(t, f.path("CheckBox.kt"))
}

func TestGenerator_UnknownDialect(t *testing.T) {
	f := newFixture(t, widgetsManifest)
	f.cfg.Dialect = "swift"

	_, err := f.gen.Run(f.cfg)
	require.Error(t, err)
	assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))
	assert.NoDirExists(t, f.cfg.OutputDir)
}

func TestGenerator_InvalidManifest(t *testing.T) {
	f := newFixture(t, "stencil android.widget.ImageView(7)\n")

	_, err := f.gen.Run(f.cfg)
	require.Error(t, err)
	assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))
}

func TestGenerator_WarnsAboutMissingTraits(t *testing.T) {
	f := newFixture(t, "stencil android.widget.ImageView traits foreground\n")

	summary, err := f.gen.Run(f.cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TraitsSkipped())
	assert.Contains(t, f.errOut.String(), "trait foreground is not registered")

	f.gen.ReportSummary(summary)
	assert.Contains(t, f.out.String(), "  - skipped foreground\n")
}

func TestGenerator_Install(t *testing.T) {
	f := newFixture(t, "stencil android.widget.ImageView traits foreground\n")
	f.gen.Install(func(r *plugin.Registry) error {
		return r.Provide(plugin.TraitPoint, models.TraitFunc{
			Name: "foreground",
			Fn: func(t *poet.TypeBuilder, _ *poet.MethodBuilder, _ poet.TypeName, _ string) error {
				t.AddMethod(poet.NewMethod("hasForeground").
					AddModifiers(poet.Public).
					Returns(poet.Boolean).
					AddStatement("return true"))
				return nil
			},
		})
	})

	summary, err := f.gen.Run(f.cfg)
	require.NoError(t, err)
	assert.Zero(t, summary.TraitsSkipped())
	assert.Empty(t, f.errOut.String())

	src, err := os.ReadFile(f.path("MyImageView.java"))
	require.NoError(t, err)
	assert.Contains(t, string(src), "public boolean hasForeground() {")
}

func TestChecker(t *testing.T) {
	f := newFixture(t, widgetsManifest)
	checker := NewChecker(f.gen)

	result, err := checker.Check(f.cfg)
	require.NoError(t, err)
	assert.False(t, result.UpToDate())
	assert.Equal(t, []string{"com/example/app/CheckBox.java", "com/example/app/MyImageView.java"}, result.Missing)

	_, err = f.gen.Run(f.cfg)
	require.NoError(t, err)

	// Hand-written sources next to generated ones are not compared
	require.NoError(t, os.WriteFile(f.path("R.java"), []byte("package com.example.app;\n"), 0o644))

	result, err = checker.Check(f.cfg)
	require.NoError(t, err)
	assert.True(t, result.UpToDate())
	assert.NotEmpty(t, result.Expected)

	require.NoError(t, os.WriteFile(f.path("MyImageView.java"), []byte(dialect.GeneratedHeader+"\nclass Stale {}\n"), 0o644))
	require.NoError(t, os.WriteFile(f.path("Old.java"), []byte(dialect.GeneratedHeader+"\nclass Old {}\n"), 0o644))
	require.NoError(t, os.Remove(f.path("CheckBox.java")))

	result, err = checker.Check(f.cfg)
	require.NoError(t, err)
	assert.False(t, result.UpToDate())
	assert.Equal(t, []string{"com/example/app/CheckBox.java"}, result.Missing)
	assert.Equal(t, []string{"com/example/app/MyImageView.java"}, result.Changed)
	assert.Equal(t, []string{"com/example/app/Old.java"}, result.Extra)
}

func TestCleaner(t *testing.T) {
	f := newFixture(t, widgetsManifest)
	_, err := f.gen.Run(f.cfg)
	require.NoError(t, err)

	cleaner := NewCleaner(f.gen.Dialects().Extensions()...)
	handwritten := f.path("Handwritten.java")
	require.NoError(t, os.WriteFile(handwritten, []byte("package com.example.app;\n"), 0o644))

	removed, err := cleaner.Clean(f.cfg.OutputDir)
	require.NoError(t, err)
	assert.Equal(t, []string{f.path("CheckBox.java"), f.path("MyImageView.java")}, removed)
	assert.FileExists(t, handwritten)

	require.NoError(t, os.Remove(handwritten))
	_, err = f.gen.Run(f.cfg)
	require.NoError(t, err)
	removed, err = cleaner.Clean(f.cfg.OutputDir)
	require.NoError(t, err)
	assert.Len(t, removed, 2)
	assert.NoDirExists(t, filepath.Join(f.cfg.OutputDir, "com"))
	assert.DirExists(t, f.cfg.OutputDir)
}

func TestCleaner_MissingDirectory(t *testing.T) {
	removed, err := NewCleaner(".java").Clean(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestLister(t *testing.T) {
	f := newFixture(t, widgetsManifest)
	lister := NewLister(f.gen)

	listing, err := lister.List(f.cfg)
	require.NoError(t, err)
	assert.Equal(t, "java", listing.Dialect)

	var ids []models.TraitID
	for _, tr := range listing.Traits {
		ids = append(ids, tr.ID)
		assert.True(t, tr.Supported)
	}
	assert.Equal(t, []models.TraitID{"visibility", "suppress-nullability", "rx.view", "rx.text-input", "rx.checkable", "rx.scrollable"}, ids)

	require.Len(t, listing.Stencils, 2)
	assert.Equal(t, "MyImageView", listing.Stencils[0].Name)
	assert.Equal(t, 3, listing.Stencils[0].Constructors)
	assert.Equal(t, "CheckBox", listing.Stencils[1].Name)
	assert.Equal(t, []models.TraitID{"visibility", "rx.checkable"}, listing.Stencils[1].Traits)

	lister.Print(listing)
	assert.Contains(t, f.out.String(), "[Traits]")
	assert.Contains(t, f.out.String(), "- MyImageView extends ImageView (3 constructors)")
	assert.Contains(t, f.out.String(), "traits: visibility, rx.checkable")
	assert.NoDirExists(t, f.cfg.OutputDir)
}
