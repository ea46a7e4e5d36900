package generator

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/toyz/artist/internal/dialect"
	"github.com/toyz/artist/internal/dialect/java"
	"github.com/toyz/artist/internal/dialect/kotlin"
	"github.com/toyz/artist/internal/errors"
	"github.com/toyz/artist/internal/models"
	"github.com/toyz/artist/internal/plugin"
	"github.com/toyz/artist/internal/poet"
	"github.com/toyz/artist/internal/registry"
	"github.com/toyz/artist/internal/utils/fileops"
)

var imageView = models.StencilDeclaration{
	BaseType:         "android.widget.ImageView",
	ConstructorArity: 3,
}

func runConfig(dir string) models.RunConfig {
	return models.RunConfig{
		OutputDir:      dir,
		PackageName:    "foo.bar",
		ViewNamePrefix: "My",
		FormatSource:   true,
	}
}

// memorySink renders into a map keyed by the path relative to dir.
type memorySink struct {
	d     dialect.Dialect
	files map[string]string
	order []string
}

func newMemorySink(d dialect.Dialect) *memorySink {
	return &memorySink{d: d, files: make(map[string]string)}
}

func (s *memorySink) Write(f *poet.File, dir string) (string, error) {
	src, err := s.d.Render(f)
	if err != nil {
		return "", err
	}
	return s.store(f, src), nil
}

func (s *memorySink) WriteFormatted(f *poet.File, dir string) (string, error) {
	src, err := s.d.Render(f)
	if err != nil {
		return "", err
	}
	formatted, err := s.d.Format(src)
	if err != nil {
		return "", errors.WrapFormatError(dialect.FileName(s.d, f), err)
	}
	return s.store(f, formatted), nil
}

func (s *memorySink) store(f *poet.File, src string) string {
	path := strings.ReplaceAll(f.Package, ".", "/") + "/" + dialect.FileName(s.d, f)
	s.files[path] = src
	s.order = append(s.order, path)
	return path
}

func generate(t *testing.T, d dialect.Dialect, cfg models.RunConfig, decls []models.StencilDeclaration, globals []models.TraitID, traits ...models.Trait) (*memorySink, *models.GenerationSummary) {
	t.Helper()
	sink := newMemorySink(d)
	g, err := NewGenerator(cfg, d.Language(), sink)
	require.NoError(t, err)
	summary, err := g.GenerateStencils(decls, globals, NewTraitMap(traits))
	require.NoError(t, err)
	return sink, summary
}

func golden(t *testing.T, name string) map[string]string {
	t.Helper()
	archive, err := txtar.ParseFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	files := make(map[string]string, len(archive.Files))
	for _, f := range archive.Files {
		files[f.Name] = string(f.Data)
	}
	return files
}

func testMethodTrait() models.Trait {
	return models.TraitFunc{
		Name: "test-method",
		Fn: func(t *poet.TypeBuilder, _ *poet.MethodBuilder, _ poet.TypeName, _ string) error {
			t.AddMethod(poet.NewMethod("testMethod").
				AddModifiers(poet.Public).
				Returns(poet.String).
				AddStatement("return $S", "foo"))
			return nil
		},
	}
}

func TestGenerate_ImageViewGolden(t *testing.T) {
	want := golden(t, "image_view.txtar")

	for _, d := range []dialect.Dialect{java.New(), kotlin.New()} {
		t.Run(d.Name(), func(t *testing.T) {
			sink, summary := generate(t, d, runConfig("out"), []models.StencilDeclaration{imageView}, nil)

			path := "foo/bar/MyImageView" + d.FileExtension()
			require.Contains(t, want, path)
			assert.Equal(t, want[path], sink.files[path])

			require.Len(t, summary.Files, 1)
			assert.Equal(t, "MyImageView", summary.Files[0].TypeName)
			assert.Equal(t, path, summary.Files[0].Path)
			assert.Empty(t, summary.Files[0].Applied)
			assert.True(t, summary.Formatted)
		})
	}
}

func TestGenerate_TraitAddsMethodWithoutTouchingConstructors(t *testing.T) {
	plain, _ := generate(t, java.New(), runConfig("out"), []models.StencilDeclaration{imageView}, nil)

	decl := imageView
	decl.Traits = []models.TraitID{"test-method"}
	withTrait, summary := generate(t, java.New(), runConfig("out"), []models.StencilDeclaration{decl}, nil, testMethodTrait())

	path := "foo/bar/MyImageView.java"
	out := withTrait.files[path]
	assert.Contains(t, out, "  public String testMethod() {\n    return \"foo\";\n  }\n")
	assert.Equal(t, constructorSection(plain.files[path]), constructorSection(out))
	assert.Equal(t, []models.TraitID{"test-method"}, summary.Files[0].Applied)
}

// constructorSection returns the class body up to the init method.
func constructorSection(src string) string {
	start := strings.Index(src, "public class")
	end := strings.Index(src, "  @CallSuper")
	if start < 0 || end < start {
		return ""
	}
	return src[start:end]
}

func TestConstructorLadder(t *testing.T) {
	tests := []struct {
		name      string
		arity     int
		styleAttr string
		want      []string
	}{
		{
			name:  "one",
			arity: 1,
			want: []string{
				"  public MyImageView(Context context) {\n    super(context);\n    init(context, null, 0, 0);\n  }\n",
			},
		},
		{
			name:      "two ignores the style",
			arity:     2,
			styleAttr: "myStyle",
			want: []string{
				"  public MyImageView(Context context) {\n    this(context, null);\n  }\n",
				"  public MyImageView(Context context, @Nullable AttributeSet attrs) {\n    super(context, attrs);\n    init(context, attrs, 0, 0);\n  }\n",
			},
		},
		{
			name:      "three with local style",
			arity:     3,
			styleAttr: "myStyle",
			want: []string{
				"  public MyImageView(Context context, @Nullable AttributeSet attrs) {\n    this(context, attrs, R.attr.myStyle);\n  }\n",
			},
		},
		{
			name:      "four with platform style",
			arity:     4,
			styleAttr: "android.R.attr.imageButtonStyle",
			want: []string{
				"    this(context, attrs, android.R.attr.imageButtonStyle);\n",
				"    super(context, attrs, defStyleAttr);\n    init(context, attrs, defStyleAttr, 0);\n",
				"  @TargetApi(Build.VERSION_CODES.LOLLIPOP)\n  public MyImageView(\n",
				"    super(context, attrs, defStyleAttr, defStyleRes);\n    init(context, attrs, defStyleAttr, defStyleRes);\n",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decl := models.StencilDeclaration{
				BaseType:         "android.widget.ImageView",
				ConstructorArity: tt.arity,
				DefaultStyleAttr: tt.styleAttr,
			}
			sink, _ := generate(t, java.New(), runConfig("out"), []models.StencilDeclaration{decl}, nil)
			out := sink.files["foo/bar/MyImageView.java"]

			assert.Equal(t, tt.arity, strings.Count(out, "  public MyImageView("), "constructor count")
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestConstructorLadderShape(t *testing.T) {
	rClass := poet.ClassName("foo.bar", "R")
	for n := models.MinConstructorArity; n <= models.MaxConstructorArity; n++ {
		ctors := constructorLadder(n, "", rClass)
		require.Len(t, ctors, n)

		for i, b := range ctors {
			arity := i + 1
			m, err := b.Build()
			require.NoError(t, err)
			require.Len(t, m.Params, arity)
			require.NotNil(t, m.Delegate)

			if arity == n || arity == 3 {
				assert.Equal(t, poet.Super, m.Delegate.Kind, "n=%d i=%d", n, arity)
				assert.Len(t, m.Delegate.Args, arity)
				assert.Len(t, m.Body, 1)
			} else {
				assert.Equal(t, poet.This, m.Delegate.Kind, "n=%d i=%d", n, arity)
				assert.Len(t, m.Delegate.Args, arity+1)
				assert.Empty(t, m.Body)
			}
			assert.Equal(t, arity == 4, len(m.Annotations) == 1)
		}
	}
}

func TestGenerate_GlobalAndAttachedTraitsRunOnce(t *testing.T) {
	var calls []string
	counting := func(id string) models.Trait {
		return models.TraitFunc{
			Name: models.TraitID(id),
			Fn: func(*poet.TypeBuilder, *poet.MethodBuilder, poet.TypeName, string) error {
				calls = append(calls, id)
				return nil
			},
		}
	}

	decl := imageView
	decl.Traits = []models.TraitID{"b", "a", "c", "b"}
	_, summary := generate(t, java.New(), runConfig("out"),
		[]models.StencilDeclaration{decl}, []models.TraitID{"a", "b"},
		counting("a"), counting("b"), counting("c"))

	assert.Equal(t, []string{"a", "b", "c"}, calls)
	assert.Equal(t, 3, summary.TraitsApplied())
}

func TestGenerate_TraitMissIsIgnored(t *testing.T) {
	plain, _ := generate(t, java.New(), runConfig("out"), []models.StencilDeclaration{imageView}, nil)

	decl := imageView
	decl.Traits = []models.TraitID{"not-registered"}
	missing, summary := generate(t, java.New(), runConfig("out"), []models.StencilDeclaration{decl}, []models.TraitID{"also-missing"})

	path := "foo/bar/MyImageView.java"
	assert.Equal(t, plain.files[path], missing.files[path])
	assert.Equal(t, []models.TraitID{"also-missing", "not-registered"}, summary.Files[0].Skipped)
	assert.Equal(t, 2, summary.TraitsSkipped())
}

func TestGenerate_UnsupportedLanguageIsSkipped(t *testing.T) {
	javaOnly := models.TraitFunc{
		Name:      "java-only",
		Languages: []poet.Language{poet.Java},
		Fn: func(t *poet.TypeBuilder, _ *poet.MethodBuilder, _ poet.TypeName, _ string) error {
			t.AddMethod(poet.NewMethod("javaOnly").AddModifiers(poet.Public))
			return nil
		},
	}

	decl := imageView
	decl.Traits = []models.TraitID{"java-only"}
	sink, summary := generate(t, kotlin.New(), runConfig("out"), []models.StencilDeclaration{decl}, nil, javaOnly)

	assert.NotContains(t, sink.files["foo/bar/MyImageView.kt"], "javaOnly")
	assert.Equal(t, []models.TraitID{"java-only"}, summary.Files[0].Skipped)
}

func TestGenerate_IsIdempotent(t *testing.T) {
	decl := imageView
	decl.Traits = []models.TraitID{"test-method"}
	decls := []models.StencilDeclaration{decl, {BaseType: "androidx.appcompat.widget.AppCompatButton", ConstructorArity: 4}}

	read := func() map[string]string {
		dir := t.TempDir()
		g, err := NewGenerator(runConfig(dir), poet.Java, fileops.NewFileWriter(java.New()))
		require.NoError(t, err)
		summary, err := g.GenerateStencils(decls, nil, NewTraitMap([]models.Trait{testMethodTrait()}))
		require.NoError(t, err)

		out := make(map[string]string)
		for _, f := range summary.Files {
			content, err := os.ReadFile(f.Path)
			require.NoError(t, err)
			rel, err := filepath.Rel(dir, f.Path)
			require.NoError(t, err)
			out[rel] = string(content)
		}
		return out
	}

	first, second := read(), read()
	assert.Len(t, first, 2)
	assert.Equal(t, first, second)
	assert.Contains(t, first, filepath.Join("foo", "bar", "MyButton.java"))
}

func TestGenerate_TraitErrorAbortsRun(t *testing.T) {
	boom := stderrors.New("boom")
	failing := models.TraitFunc{
		Name: "failing",
		Fn: func(*poet.TypeBuilder, *poet.MethodBuilder, poet.TypeName, string) error {
			return boom
		},
	}

	first := imageView
	second := models.StencilDeclaration{BaseType: "android.widget.Button", ConstructorArity: 1, Traits: []models.TraitID{"failing"}}
	third := models.StencilDeclaration{BaseType: "android.widget.TextView", ConstructorArity: 1}

	sink := newMemorySink(java.New())
	g, err := NewGenerator(runConfig("out"), poet.Java, sink)
	require.NoError(t, err)
	summary, err := g.GenerateStencils([]models.StencilDeclaration{first, second, third}, nil, NewTraitMap([]models.Trait{failing}))

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, errors.GenerationErrorCode, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "trait 'failing' failed for android.widget.Button")
	assert.Equal(t, []string{"foo/bar/MyImageView.java"}, sink.order)
	assert.Len(t, summary.Files, 1)
}

func TestGenerate_MalformedTraitCodeIsReported(t *testing.T) {
	malformed := models.TraitFunc{
		Name: "malformed",
		Fn: func(_ *poet.TypeBuilder, init *poet.MethodBuilder, _ poet.TypeName, _ string) error {
			init.AddStatement("setTag($T)", "not a type")
			return nil
		},
	}

	decl := imageView
	decl.Traits = []models.TraitID{"malformed"}
	g, err := NewGenerator(runConfig("out"), poet.Java, newMemorySink(java.New()))
	require.NoError(t, err)
	_, err = g.GenerateStencils([]models.StencilDeclaration{decl}, nil, NewTraitMap([]models.Trait{malformed}))

	require.Error(t, err)
	assert.ErrorIs(t, err, poet.ErrMalformedCode)
	assert.Contains(t, err.Error(), "trait 'malformed'")
}

func TestGenerate_UnclosedFlowNamesTrait(t *testing.T) {
	dangling := models.TraitFunc{
		Name: "dangling",
		Fn: func(_ *poet.TypeBuilder, init *poet.MethodBuilder, _ poet.TypeName, _ string) error {
			init.BeginControlFlow("if (isEnabled())").AddStatement("setAlpha(1f)")
			return nil
		},
	}

	decl := imageView
	decl.Traits = []models.TraitID{"dangling"}
	g, err := NewGenerator(runConfig("out"), poet.Java, newMemorySink(java.New()))
	require.NoError(t, err)
	_, err = g.GenerateStencils([]models.StencilDeclaration{decl}, nil, NewTraitMap([]models.Trait{dangling}))

	require.Error(t, err)
	assert.ErrorIs(t, err, poet.ErrMalformedCode)
	assert.Contains(t, err.Error(), "trait 'dangling' failed for android.widget.ImageView")
	assert.Contains(t, err.Error(), "1 unclosed control flow block(s) in init")
}

func TestGenerate_FormatErrorNamesFile(t *testing.T) {
	broken := models.TraitFunc{
		Name: "broken",
		Fn: func(_ *poet.TypeBuilder, init *poet.MethodBuilder, _ poet.TypeName, _ string) error {
			init.AddStatement("setTag(")
			return nil
		},
	}

	decl := imageView
	decl.Traits = []models.TraitID{"broken"}
	g, err := NewGenerator(runConfig("out"), poet.Java, newMemorySink(java.New()))
	require.NoError(t, err)
	_, err = g.GenerateStencils([]models.StencilDeclaration{decl}, nil, NewTraitMap([]models.Trait{broken}))

	require.Error(t, err)
	assert.Equal(t, errors.FormatErrorCode, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "MyImageView.java")

	cfg := runConfig("out")
	cfg.FormatSource = false
	g, err = NewGenerator(cfg, poet.Java, newMemorySink(java.New()))
	require.NoError(t, err)
	_, err = g.GenerateStencils([]models.StencilDeclaration{decl}, nil, NewTraitMap([]models.Trait{broken}))
	assert.NoError(t, err)
}

func TestGenerate_ConfigurationErrors(t *testing.T) {
	g, err := NewGenerator(runConfig("out"), poet.Java, newMemorySink(java.New()))
	require.NoError(t, err)

	bad := imageView
	bad.ConstructorArity = 5
	_, err = g.GenerateStencils([]models.StencilDeclaration{bad}, nil, nil)
	assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "android.widget.ImageView")

	clash := models.StencilDeclaration{BaseType: "androidx.appcompat.widget.AppCompatImageView", ConstructorArity: 2}
	_, err = g.GenerateStencils([]models.StencilDeclaration{imageView, clash}, nil, nil)
	require.Error(t, err)
	assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "MyImageView is already used")

	_, err = NewGenerator(models.RunConfig{OutputDir: "out"}, poet.Java, newMemorySink(java.New()))
	assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))

	cfg := runConfig("out")
	cfg.SuperinterfaceClassName = "Themed"
	_, err = NewGenerator(cfg, poet.Java, newMemorySink(java.New()))
	assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))

	_, err = NewGenerator(runConfig("out"), poet.Java, nil)
	assert.Error(t, err)
}

func TestGenerate_ExactDuplicatesCollapse(t *testing.T) {
	sink, summary := generate(t, java.New(), runConfig("out"), []models.StencilDeclaration{imageView, imageView}, nil)
	assert.Len(t, summary.Files, 1)
	assert.Len(t, sink.order, 1)
}

func TestGenerate_TraitOrderDoesNotSplitDuplicates(t *testing.T) {
	first := imageView
	first.Traits = []models.TraitID{"a", "b"}
	second := imageView
	second.Traits = []models.TraitID{"b", "a", "b"}

	g, err := NewGenerator(runConfig("out"), poet.Java, newMemorySink(java.New()))
	require.NoError(t, err)
	resolved, err := g.ResolveAll([]models.StencilDeclaration{first, second}, nil)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, []models.TraitID{"a", "b"}, resolved[0].Traits)
}

func TestGenerate_SuperinterfaceAndViewPackage(t *testing.T) {
	cfg := runConfig("out")
	cfg.SuperinterfaceClassName = "com.example.Themed"
	cfg.ViewPackageName = "foo.bar.widget"

	sink, _ := generate(t, java.New(), cfg, []models.StencilDeclaration{imageView}, nil)
	out := sink.files["foo/bar/widget/MyImageView.java"]

	assert.Contains(t, out, "package foo.bar.widget;\n")
	assert.Contains(t, out, "import com.example.Themed;\n")
	assert.Contains(t, out, "public class MyImageView extends ImageView implements Themed {\n")
}

func TestGenerate_Hooks(t *testing.T) {
	var order []string
	decl := imageView
	decl.Name = "FancyImage"
	decl.Traits = []models.TraitID{"recorder"}
	decl.Hooks = models.Hooks{
		Attrs: func(_ *poet.TypeBuilder, _ *poet.MethodBuilder, rClass poet.TypeName) poet.CodeBlock {
			order = append(order, "attrs")
			return poet.Code("setAlpha(a.getFloat($T.styleable.FancyImage_alpha, 1f))", rClass)
		},
		Init: func(_ *poet.TypeBuilder, init *poet.MethodBuilder) error {
			order = append(order, "init")
			init.AddStatement("setClickable(true)")
			return nil
		},
		Type: func(tb *poet.TypeBuilder) error {
			order = append(order, "type")
			assert.True(t, tb.HasMethod("init"), "init is sealed before the type hook")
			return nil
		},
	}
	recorder := models.TraitFunc{
		Name: "recorder",
		Fn: func(*poet.TypeBuilder, *poet.MethodBuilder, poet.TypeName, string) error {
			order = append(order, "trait")
			return nil
		},
	}

	cfg := runConfig("out")
	cfg.FormatSource = false
	sink, _ := generate(t, java.New(), cfg, []models.StencilDeclaration{decl}, nil, recorder)
	out := sink.files["foo/bar/FancyImage.java"]

	assert.Equal(t, []string{"attrs", "init", "trait", "type"}, order)
	assert.Contains(t, out, "import android.content.res.TypedArray;\n")
	assert.Contains(t, out, "    if (attrs != null) {\n"+
		"      TypedArray a = context.obtainStyledAttributes(attrs, R.styleable.FancyImage, defStyleAttr, defStyleRes);\n"+
		"      setAlpha(a.getFloat(R.styleable.FancyImage_alpha, 1f));\n"+
		"      a.recycle();\n"+
		"    }\n"+
		"    setClickable(true);\n")
}

func TestGenerate_EmptyAttrsHookAddsNothing(t *testing.T) {
	decl := imageView
	decl.Hooks.Attrs = func(*poet.TypeBuilder, *poet.MethodBuilder, poet.TypeName) poet.CodeBlock {
		return poet.CodeBlock{}
	}
	sink, _ := generate(t, java.New(), runConfig("out"), []models.StencilDeclaration{decl}, nil)
	assert.NotContains(t, sink.files["foo/bar/MyImageView.java"], "obtainStyledAttributes")
}

func TestGenerate_HookErrors(t *testing.T) {
	decl := imageView
	decl.Hooks.Type = func(*poet.TypeBuilder) error { return stderrors.New("no") }

	g, err := NewGenerator(runConfig("out"), poet.Java, newMemorySink(java.New()))
	require.NoError(t, err)
	_, err = g.GenerateStencils([]models.StencilDeclaration{decl}, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "during type hook")
}

func TestTraitMap(t *testing.T) {
	first := models.TraitFunc{Name: "x", Languages: []poet.Language{poet.Java}}
	second := models.TraitFunc{Name: "x"}

	m := NewTraitMap([]models.Trait{first, second})
	got, ok := m.Lookup("x")
	require.True(t, ok)
	assert.False(t, models.SupportsLanguage(got, poet.Kotlin), "first registration wins")

	_, ok = m.Lookup("y")
	assert.False(t, ok)
}

func TestGenerate_FromRegistries(t *testing.T) {
	plugins := plugin.NewRegistry()
	require.NoError(t, plugins.Provide(plugin.TraitPoint, testMethodTrait()))
	require.NoError(t, plugins.Provide(plugin.StencilProviderPoint, models.StaticProvider{
		ID:           "widgets",
		Declarations: []models.StencilDeclaration{imageView},
		Globals:      []models.TraitID{"test-method"},
	}))

	sink := newMemorySink(java.New())
	g, err := NewGenerator(runConfig("out"), poet.Java, sink)
	require.NoError(t, err)
	summary, err := g.Generate(registry.NewStencilRegistry(plugins), registry.NewTraitRegistry(plugins))
	require.NoError(t, err)

	require.Len(t, summary.Files, 1)
	assert.Equal(t, "android.widget.ImageView", summary.Files[0].Stencil)
	assert.Contains(t, sink.files["foo/bar/MyImageView.java"], "testMethod()")
}
