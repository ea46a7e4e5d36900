package registry

import "github.com/toyz/artist/internal/models"

// TraitSource resolves the trait implementations available to a run
type TraitSource interface {
	Traits() ([]models.Trait, error)
}

// StencilSource resolves the stencils to generate and the trait ids applied
// to all of them
type StencilSource interface {
	Stencils() ([]models.StencilDeclaration, error)
	GlobalTraits() ([]models.TraitID, error)
}
