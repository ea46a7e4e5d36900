package generator

import "github.com/toyz/artist/internal/models"

// TraitMap indexes the traits of one run by id.
type TraitMap map[models.TraitID]models.Trait

// NewTraitMap indexes traits, keeping the first trait registered for an id.
func NewTraitMap(traits []models.Trait) TraitMap {
	m := make(TraitMap, len(traits))
	for _, t := range traits {
		if _, exists := m[t.ID()]; !exists {
			m[t.ID()] = t
		}
	}
	return m
}

// Lookup returns the trait for id. A miss is not an error.
func (m TraitMap) Lookup(id models.TraitID) (models.Trait, bool) {
	t, ok := m[id]
	return t, ok
}
