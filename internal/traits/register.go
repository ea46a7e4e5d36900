package traits

import (
	"github.com/toyz/artist/internal/models"
	"github.com/toyz/artist/internal/plugin"
)

// Builtins returns the traits of this package in registration order.
func Builtins() []models.Trait {
	return []models.Trait{Visibility{}, SuppressNullability{}}
}

// Register adds the built-in traits to r.
func Register(r *plugin.Registry) error {
	for _, t := range Builtins() {
		if err := r.Provide(plugin.TraitPoint, t); err != nil {
			return err
		}
	}
	return nil
}
