package models

import "github.com/toyz/artist/internal/poet"

// TraitID identifies a trait across registries and manifests.
type TraitID string

// Trait contributes generated members to a stencil's class. Traits are
// shared between stencils within a run and must not keep state between
// calls.
type Trait interface {
	ID() TraitID
	// GenerateFor adds fields, methods, annotations or init statements.
	// rClass is the application's R class; name is the generated class name.
	GenerateFor(t *poet.TypeBuilder, init *poet.MethodBuilder, rClass poet.TypeName, name string) error
}

// LanguageScoped is implemented by traits that only support some dialects.
// Traits without it support all of them.
type LanguageScoped interface {
	Supports(lang poet.Language) bool
}

// SupportsLanguage reports whether t can generate for lang.
func SupportsLanguage(t Trait, lang poet.Language) bool {
	if ls, ok := t.(LanguageScoped); ok {
		return ls.Supports(lang)
	}
	return true
}

// TraitFunc adapts a function to the Trait interface.
type TraitFunc struct {
	Name TraitID
	Fn   func(t *poet.TypeBuilder, init *poet.MethodBuilder, rClass poet.TypeName, name string) error
	// Languages restricts the trait to the listed dialects when non-empty.
	Languages []poet.Language
}

func (f TraitFunc) ID() TraitID { return f.Name }

func (f TraitFunc) GenerateFor(t *poet.TypeBuilder, init *poet.MethodBuilder, rClass poet.TypeName, name string) error {
	return f.Fn(t, init, rClass, name)
}

func (f TraitFunc) Supports(lang poet.Language) bool {
	if len(f.Languages) == 0 {
		return true
	}
	for _, l := range f.Languages {
		if l == lang {
			return true
		}
	}
	return false
}
