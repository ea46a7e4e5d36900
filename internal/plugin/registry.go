// Package plugin is the process-wide extension registry. Built-in traits,
// manifest-backed stencil providers and policy objects are registered
// against named extension points at start-up and looked up by the engine.
package plugin

import (
	"fmt"

	"github.com/toyz/artist/internal/errors"
	"github.com/toyz/artist/internal/utils"
)

// ExtensionPoint names a kind of pluggable implementation.
type ExtensionPoint string

const (
	TraitPoint           ExtensionPoint = "artist.trait"
	StencilProviderPoint ExtensionPoint = "artist.stencil-provider"
	RxConfigPoint        ExtensionPoint = "artist.rx-config"
)

// Factory creates one implementation. Factories are invoked on every lookup.
type Factory func() (any, error)

// Registry maps extension points to the factories registered for them, in
// registration order.
type Registry struct {
	points *utils.BaseRegistry[ExtensionPoint, []Factory]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		points: utils.NewBaseRegistry[ExtensionPoint, []Factory]("plugin", "extension point"),
	}
}

// Register appends a factory to point.
func (r *Registry) Register(point ExtensionPoint, factory Factory) error {
	if point == "" {
		return errors.WrapRegistrationError(string(point), "extension point cannot be empty", nil)
	}
	if factory == nil {
		return errors.WrapRegistrationError(string(point), "factory cannot be nil", nil)
	}
	r.points.Upsert(point, func(current []Factory, _ bool) []Factory {
		return append(current, factory)
	})
	return nil
}

// Provide registers a ready-made instance.
func (r *Registry) Provide(point ExtensionPoint, impl any) error {
	if impl == nil {
		return errors.WrapRegistrationError(string(point), "implementation cannot be nil", nil)
	}
	return r.Register(point, func() (any, error) { return impl, nil })
}

// Implementations instantiates every factory registered for point. An
// unknown point yields an empty slice.
func (r *Registry) Implementations(point ExtensionPoint) ([]any, error) {
	factories, _ := r.points.Get(point)
	out := make([]any, 0, len(factories))
	for i, factory := range factories {
		impl, err := factory()
		if err != nil {
			return nil, errors.WrapRegistrationError(string(point),
				fmt.Sprintf("factory #%d failed", i+1), err)
		}
		out = append(out, impl)
	}
	return out, nil
}

// Points lists the extension points with at least one registration.
func (r *Registry) Points() []ExtensionPoint {
	return r.points.List()
}

// Lookup returns the implementations of point as T. An implementation of
// the wrong type is a registration error.
func Lookup[T any](r *Registry, point ExtensionPoint) ([]T, error) {
	impls, err := r.Implementations(point)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(impls))
	for _, impl := range impls {
		typed, ok := impl.(T)
		if !ok {
			var want T
			return nil, errors.WrapRegistrationError(string(point),
				fmt.Sprintf("%T does not implement %T", impl, &want), nil)
		}
		out = append(out, typed)
	}
	return out, nil
}

// First returns the first implementation of point, or fallback when none is
// registered.
func First[T any](r *Registry, point ExtensionPoint, fallback T) (T, error) {
	impls, err := Lookup[T](r, point)
	if err != nil {
		return fallback, err
	}
	if len(impls) == 0 {
		return fallback, nil
	}
	return impls[0], nil
}
