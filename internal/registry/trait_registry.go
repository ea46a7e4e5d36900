package registry

import (
	"fmt"
	"strings"

	"github.com/toyz/artist/internal/errors"
	"github.com/toyz/artist/internal/models"
	"github.com/toyz/artist/internal/plugin"
)

// TraitRegistry resolves traits registered at the trait extension point
type TraitRegistry struct {
	plugins *plugin.Registry
}

// NewTraitRegistry creates a trait registry over the plugin registry
func NewTraitRegistry(plugins *plugin.Registry) *TraitRegistry {
	return &TraitRegistry{plugins: plugins}
}

// Traits returns every registered trait in registration order. When two
// implementations share an id the first one wins.
func (r *TraitRegistry) Traits() ([]models.Trait, error) {
	impls, err := plugin.Lookup[models.Trait](r.plugins, plugin.TraitPoint)
	if err != nil {
		return nil, err
	}

	seen := make(map[models.TraitID]bool, len(impls))
	traits := make([]models.Trait, 0, len(impls))
	for _, t := range impls {
		id := t.ID()
		if id == "" {
			return nil, errors.WrapRegistrationError(string(plugin.TraitPoint),
				fmt.Sprintf("%T has an empty trait id", t), nil)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		traits = append(traits, t)
	}
	return traits, nil
}

// Get returns the trait registered under id
func (r *TraitRegistry) Get(id models.TraitID) (models.Trait, bool, error) {
	traits, err := r.Traits()
	if err != nil {
		return nil, false, err
	}
	for _, t := range traits {
		if t.ID() == id {
			return t, true, nil
		}
	}
	return nil, false, nil
}

// Missing returns the ids in ids that no registered trait answers to.
// Generation tolerates misses; callers use this to warn about them.
func (r *TraitRegistry) Missing(ids []models.TraitID) ([]models.TraitID, error) {
	traits, err := r.Traits()
	if err != nil {
		return nil, err
	}
	known := make(map[models.TraitID]bool, len(traits))
	for _, t := range traits {
		known[t.ID()] = true
	}

	var missing []models.TraitID
	for _, id := range models.UnionTraits(ids) {
		if strings.TrimSpace(string(id)) == "" || known[id] {
			continue
		}
		missing = append(missing, id)
	}
	return missing, nil
}
