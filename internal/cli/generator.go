package cli

import (
	"fmt"

	"github.com/toyz/artist/internal/dialect"
	"github.com/toyz/artist/internal/generator"
	"github.com/toyz/artist/internal/manifest"
	"github.com/toyz/artist/internal/models"
	"github.com/toyz/artist/internal/plugin"
	"github.com/toyz/artist/internal/registry"
	"github.com/toyz/artist/internal/traits"
	"github.com/toyz/artist/internal/traits/rx"
	"github.com/toyz/artist/internal/utils"
	"github.com/toyz/artist/internal/utils/fileops"
)

// Installer registers additional extensions before a run
type Installer func(r *plugin.Registry) error

// Generator coordinates the CLI generation process: it assembles the plugin
// registry from built-in traits and manifests, picks the dialect and drives
// the engine.
type Generator struct {
	diagnostics *utils.DiagnosticSystem
	loader      *manifest.Loader
	dialects    *DialectRegistry
	installers  []Installer
}

// NewGenerator creates a CLI generator reporting through diagnostics
func NewGenerator(diagnostics *utils.DiagnosticSystem) *Generator {
	return &Generator{
		diagnostics: diagnostics,
		loader:      manifest.NewLoader(),
		dialects:    NewDialectRegistry(),
	}
}

// Install adds an installer run after the built-ins on every Plugins call
func (g *Generator) Install(installers ...Installer) *Generator {
	g.installers = append(g.installers, installers...)
	return g
}

// Dialects returns the dialects the generator can emit
func (g *Generator) Dialects() *DialectRegistry {
	return g.dialects
}

// Plugins builds the registry for cfg: built-in traits, rx traits, the
// configured manifests, then the installers.
func (g *Generator) Plugins(cfg *Config) (*plugin.Registry, error) {
	r := plugin.NewRegistry()
	if err := traits.Register(r); err != nil {
		return nil, err
	}
	if err := rx.Register(r); err != nil {
		return nil, err
	}

	paths, err := g.loader.Expand(cfg.Manifests)
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		g.diagnostics.Verbose("loading manifest %s", p)
	}
	if err := g.loader.Register(r, paths...); err != nil {
		return nil, err
	}

	for _, install := range g.installers {
		if err := install(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Engine returns the configured engine and its plugin registry
func (g *Generator) Engine(cfg *Config) (*generator.Generator, *plugin.Registry, dialect.Dialect, error) {
	d, err := g.dialects.Resolve(cfg.Dialect)
	if err != nil {
		return nil, nil, nil, err
	}
	plugins, err := g.Plugins(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	engine, err := generator.NewGenerator(cfg.RunConfig(), d.Language(), fileops.NewFileWriter(d),
		generator.WithReporter(g.diagnostics))
	if err != nil {
		return nil, nil, nil, err
	}
	return engine, plugins, d, nil
}

// Run generates every registered stencil into cfg.OutputDir
func (g *Generator) Run(cfg *Config) (*models.GenerationSummary, error) {
	engine, plugins, d, err := g.Engine(cfg)
	if err != nil {
		return nil, err
	}

	stencils := registry.NewStencilRegistry(plugins)
	traitRegistry := registry.NewTraitRegistry(plugins)
	g.warnMissingTraits(stencils, traitRegistry)

	summary, err := engine.Generate(stencils, traitRegistry)
	if summary != nil {
		summary.Dialect = d.Name()
	}
	return summary, err
}

// warnMissingTraits reports trait ids that no registered trait provides.
// The engine skips them; the warning names them once per run.
func (g *Generator) warnMissingTraits(stencils *registry.StencilRegistry, traitRegistry *registry.TraitRegistry) {
	decls, err := stencils.Stencils()
	if err != nil {
		return
	}
	globals, _ := stencils.GlobalTraits()

	ids := append([]models.TraitID(nil), globals...)
	for _, d := range decls {
		ids = append(ids, d.Traits...)
	}
	missing, err := traitRegistry.Missing(ids)
	if err != nil {
		return
	}
	for _, id := range missing {
		g.diagnostics.Warn("trait %s is not registered and will be skipped", id)
	}
}

// ReportSummary prints the outcome of a run
func (g *Generator) ReportSummary(summary *models.GenerationSummary) {
	if len(summary.Files) > 0 {
		g.diagnostics.PhaseHeader("Generated Files")
		for _, f := range summary.Files {
			g.diagnostics.PhaseItem(fmt.Sprintf("%s -> %s", f.Stencil, f.Path))
			g.diagnostics.Indent()
			for _, id := range f.Skipped {
				g.diagnostics.List("skipped %s", id)
			}
			g.diagnostics.Unindent()
		}
	}

	g.diagnostics.Summary("Generation Complete!", map[string]interface{}{
		"Dialect":         summary.Dialect,
		"Output":          summary.OutputDir,
		"Files generated": len(summary.Files),
		"Traits applied":  summary.TraitsApplied(),
		"Traits skipped":  summary.TraitsSkipped(),
	})
}
