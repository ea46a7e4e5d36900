package generator

import (
	"fmt"

	"github.com/toyz/artist/internal/dialect"
	"github.com/toyz/artist/internal/errors"
	"github.com/toyz/artist/internal/models"
	"github.com/toyz/artist/internal/poet"
	"github.com/toyz/artist/internal/registry"
)

// Generator turns stencils into widget classes and writes them through a
// sink. It is synchronous and holds no state between runs.
type Generator struct {
	config   models.RunConfig
	lang     poet.Language
	sink     OutputSink
	reporter Reporter
}

// Option configures a Generator
type Option func(*Generator)

// WithReporter routes progress diagnostics to r
func WithReporter(r Reporter) Option {
	return func(g *Generator) {
		if r != nil {
			g.reporter = r
		}
	}
}

// NewGenerator validates cfg and creates a generator emitting lang.
func NewGenerator(cfg models.RunConfig, lang poet.Language, sink OutputSink, opts ...Option) (*Generator, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		return nil, errors.ConfigurationError("output", "an output sink is required")
	}

	g := &Generator{
		config:   cfg,
		lang:     lang,
		sink:     sink,
		reporter: nopReporter{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Config returns the effective run configuration
func (g *Generator) Config() models.RunConfig {
	return g.config
}

// Generate resolves stencils and traits from the registries and generates
// every stencil.
func (g *Generator) Generate(stencils registry.StencilSource, traits registry.TraitSource) (*models.GenerationSummary, error) {
	decls, err := stencils.Stencils()
	if err != nil {
		return nil, err
	}
	globals, err := stencils.GlobalTraits()
	if err != nil {
		return nil, err
	}
	available, err := traits.Traits()
	if err != nil {
		return nil, err
	}
	return g.GenerateStencils(decls, globals, NewTraitMap(available))
}

// GenerateStencils generates decls in order. The first failure aborts the
// run; files already written stay on disk.
func (g *Generator) GenerateStencils(decls []models.StencilDeclaration, globals []models.TraitID, traits TraitMap) (*models.GenerationSummary, error) {
	resolved, err := g.ResolveAll(decls, globals)
	if err != nil {
		return nil, err
	}

	summary := &models.GenerationSummary{
		OutputDir: g.config.OutputDir,
		Formatted: g.config.FormatSource,
	}
	for _, stencil := range resolved {
		file, applied, skipped, err := g.BuildFile(stencil, traits)
		if err != nil {
			return summary, err
		}

		path, err := g.write(file)
		if err != nil {
			return summary, err
		}
		g.reporter.Verbose("wrote %s", path)

		summary.Files = append(summary.Files, models.GeneratedFile{
			Stencil:  stencil.Declaration.String(),
			TypeName: stencil.Name,
			Path:     path,
			Applied:  applied,
			Skipped:  skipped,
		})
	}
	return summary, nil
}

// ResolveAll binds every declaration to this run. Exact duplicates collapse;
// two different declarations deriving the same class name are rejected.
func (g *Generator) ResolveAll(decls []models.StencilDeclaration, globals []models.TraitID) ([]models.ResolvedStencil, error) {
	seenKeys := make(map[string]bool, len(decls))
	byName := make(map[string]models.StencilDeclaration, len(decls))

	resolved := make([]models.ResolvedStencil, 0, len(decls))
	for _, decl := range decls {
		if seenKeys[decl.Key()] {
			continue
		}
		seenKeys[decl.Key()] = true

		stencil, err := models.Resolve(decl, g.config, globals)
		if err != nil {
			return nil, err
		}
		if previous, clash := byName[stencil.Name]; clash {
			return nil, errors.ConfigurationError(decl.String(),
				fmt.Sprintf("generated name %s is already used by %s", stencil.Name, previous)).
				WithSuggestion("give one of the stencils an explicit name")
		}
		byName[stencil.Name] = decl
		resolved = append(resolved, stencil)
	}
	return resolved, nil
}

// BuildFile assembles the file for one stencil without writing it. It
// returns the trait ids that contributed and those that were skipped.
func (g *Generator) BuildFile(stencil models.ResolvedStencil, traits TraitMap) (*poet.File, []models.TraitID, []models.TraitID, error) {
	decl := stencil.Declaration
	identity := decl.String()
	rClass := g.config.RClass()

	typ := poet.NewClass(stencil.Name, g.lang).
		AddModifiers(poet.Public, poet.Open).
		Superclass(stencil.Superclass)
	iface, err := g.config.Superinterface()
	if err != nil {
		return nil, nil, nil, err
	}
	if !iface.IsZero() {
		typ.AddSuperinterface(iface)
	}

	for _, ctor := range constructorLadder(decl.ConstructorArity, decl.DefaultStyleAttr, rClass) {
		typ.AddMethod(ctor)
	}
	if err := typ.Err(); err != nil {
		return nil, nil, nil, errors.WrapGenerationError(identity, "constructors", err)
	}

	init := newInitializer()
	if decl.Hooks.Attrs != nil {
		if body := decl.Hooks.Attrs(typ, init, rClass); !body.IsEmpty() {
			addStyledAttributes(init, rClass, stencil.Name, body)
		}
	}
	if decl.Hooks.Init != nil {
		if err := decl.Hooks.Init(typ, init); err != nil {
			return nil, nil, nil, errors.WrapGenerationError(identity, "init hook", err)
		}
	}
	if err := firstErr(typ.Err(), init.Err(), init.Unclosed()); err != nil {
		return nil, nil, nil, errors.WrapGenerationError(identity, "init hook", err)
	}

	var applied, skipped []models.TraitID
	for _, id := range stencil.Traits {
		trait, ok := traits.Lookup(id)
		if !ok {
			g.reporter.Debug("%s: trait %s is not registered", stencil.Name, id)
			skipped = append(skipped, id)
			continue
		}
		if !models.SupportsLanguage(trait, g.lang) {
			g.reporter.Debug("%s: trait %s does not support %s", stencil.Name, id, g.lang)
			skipped = append(skipped, id)
			continue
		}

		if err := trait.GenerateFor(typ, init, rClass, stencil.Name); err != nil {
			return nil, nil, nil, errors.WrapTraitError(identity, string(id), err)
		}
		if err := firstErr(typ.Err(), init.Err(), init.Unclosed()); err != nil {
			return nil, nil, nil, errors.WrapTraitError(identity, string(id), err)
		}
		applied = append(applied, id)
	}

	typ.AddMethod(init)
	if decl.Hooks.Type != nil {
		if err := decl.Hooks.Type(typ); err != nil {
			return nil, nil, nil, errors.WrapGenerationError(identity, "type hook", err)
		}
	}

	built, err := typ.Build()
	if err != nil {
		return nil, nil, nil, errors.WrapGenerationError(identity, "assembly", err)
	}
	file := poet.NewFile(g.config.ViewPackageName, built).AddComment(dialect.HeaderText)
	return file, applied, skipped, nil
}

func (g *Generator) write(file *poet.File) (string, error) {
	if g.config.FormatSource {
		return g.sink.WriteFormatted(file, g.config.OutputDir)
	}
	return g.sink.Write(file, g.config.OutputDir)
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
