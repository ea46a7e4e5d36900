package cli

import (
	"strings"

	"github.com/toyz/artist/internal/models"
	"github.com/toyz/artist/internal/poet"
	"github.com/toyz/artist/internal/registry"
)

// TraitInfo describes one registered trait
type TraitInfo struct {
	ID        models.TraitID
	Supported bool // supported by the configured dialect
}

// StencilInfo describes one stencil as the configured run would generate it
type StencilInfo struct {
	Name         string
	Superclass   poet.TypeName
	Constructors int
	Source       string
	Traits       []models.TraitID
}

// Listing is what `artist list` prints
type Listing struct {
	Dialect  string
	Traits   []TraitInfo
	Stencils []StencilInfo
}

// Lister resolves the configured run without writing anything
type Lister struct {
	generator *Generator
}

// NewLister creates a lister driving g
func NewLister(g *Generator) *Lister {
	return &Lister{generator: g}
}

// List resolves registered traits and stencils for cfg
func (l *Lister) List(cfg *Config) (*Listing, error) {
	engine, plugins, d, err := l.generator.Engine(cfg)
	if err != nil {
		return nil, err
	}

	available, err := registry.NewTraitRegistry(plugins).Traits()
	if err != nil {
		return nil, err
	}
	listing := &Listing{Dialect: d.Name()}
	for _, t := range available {
		listing.Traits = append(listing.Traits, TraitInfo{
			ID:        t.ID(),
			Supported: models.SupportsLanguage(t, d.Language()),
		})
	}

	stencils := registry.NewStencilRegistry(plugins)
	decls, err := stencils.Stencils()
	if err != nil {
		return nil, err
	}
	globals, err := stencils.GlobalTraits()
	if err != nil {
		return nil, err
	}
	resolved, err := engine.ResolveAll(decls, globals)
	if err != nil {
		return nil, err
	}
	for _, s := range resolved {
		listing.Stencils = append(listing.Stencils, StencilInfo{
			Name:         s.Name,
			Superclass:   s.Superclass,
			Constructors: s.Declaration.ConstructorArity,
			Source:       s.Declaration.Source,
			Traits:       s.Traits,
		})
	}
	return listing, nil
}

// Print writes the listing through the generator's diagnostics
func (l *Lister) Print(listing *Listing) {
	diag := l.generator.diagnostics

	diag.Category("Traits")
	for _, t := range listing.Traits {
		if t.Supported {
			diag.List("%s", t.ID)
		} else {
			diag.List("%s (not available for %s)", t.ID, listing.Dialect)
		}
	}

	diag.Category("Stencils")
	for _, s := range listing.Stencils {
		diag.List("%s extends %s (%d constructors)", s.Name, s.Superclass.Simple(), s.Constructors)
		if len(s.Traits) > 0 || s.Source != "" {
			diag.Indent()
			if len(s.Traits) > 0 {
				diag.List("traits: %s", joinTraits(s.Traits))
			}
			if s.Source != "" {
				diag.List("from %s", s.Source)
			}
			diag.Unindent()
		}
	}
}

func joinTraits(ids []models.TraitID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ", ")
}
