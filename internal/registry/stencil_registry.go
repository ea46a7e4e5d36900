package registry

import (
	"github.com/toyz/artist/internal/models"
	"github.com/toyz/artist/internal/plugin"
)

// StencilRegistry resolves stencils and global traits from the providers
// registered at the stencil provider extension point
type StencilRegistry struct {
	plugins *plugin.Registry
}

// NewStencilRegistry creates a stencil registry over the plugin registry
func NewStencilRegistry(plugins *plugin.Registry) *StencilRegistry {
	return &StencilRegistry{plugins: plugins}
}

// Providers returns the registered providers in registration order
func (r *StencilRegistry) Providers() ([]models.StencilProvider, error) {
	return plugin.Lookup[models.StencilProvider](r.plugins, plugin.StencilProviderPoint)
}

// Stencils concatenates the declarations of all providers. Declarations that
// are exactly identical collapse to the first one.
func (r *StencilRegistry) Stencils() ([]models.StencilDeclaration, error) {
	providers, err := r.Providers()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var stencils []models.StencilDeclaration
	for _, p := range providers {
		for _, decl := range p.Stencils() {
			if decl.Source == "" {
				decl.Source = p.Name()
			}
			key := decl.Key()
			if seen[key] {
				continue
			}
			seen[key] = true
			stencils = append(stencils, decl)
		}
	}
	return stencils, nil
}

// GlobalTraits returns the union of every provider's global trait ids
func (r *StencilRegistry) GlobalTraits() ([]models.TraitID, error) {
	providers, err := r.Providers()
	if err != nil {
		return nil, err
	}

	lists := make([][]models.TraitID, 0, len(providers))
	for _, p := range providers {
		lists = append(lists, p.GlobalTraits())
	}
	return models.UnionTraits(lists...), nil
}
