package rx

import (
	"github.com/toyz/artist/internal/models"
	"github.com/toyz/artist/internal/plugin"
)

// constructors of the rx traits, in registration order.
var constructors = []func(Config) models.Trait{
	func(cfg Config) models.Trait { return NewView(cfg) },
	func(cfg Config) models.Trait { return NewTextInput(cfg) },
	func(cfg Config) models.Trait { return NewCheckable(cfg) },
	func(cfg Config) models.Trait { return NewScrollable(cfg) },
}

// Register adds the rx traits to r. The Config is resolved each time the
// traits are looked up, so a Config registered after the traits still
// applies.
func Register(r *plugin.Registry) error {
	for _, newTrait := range constructors {
		err := r.Register(plugin.TraitPoint, func() (any, error) {
			cfg, err := ResolveConfig(r)
			if err != nil {
				return nil, err
			}
			return newTrait(cfg), nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}
