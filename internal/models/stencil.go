package models

import (
	"fmt"
	"slices"
	"strings"

	"github.com/toyz/artist/internal/errors"
	"github.com/toyz/artist/internal/poet"
)

// StrippedPrefix is removed from the base type's simple name before the
// run's name prefix is applied.
const StrippedPrefix = "AppCompat"

const (
	MinConstructorArity     = 1
	MaxConstructorArity     = 4
	DefaultConstructorArity = 4
)

// StencilDeclaration describes one generated widget subclass. It is never
// mutated; Resolve derives the per-run values.
type StencilDeclaration struct {
	// BaseType is the fully-qualified superclass, e.g. android.widget.ImageView.
	BaseType string
	// ConstructorArity is the number of canonical constructor overloads, 1-4.
	ConstructorArity int
	// DefaultStyleAttr is either a platform reference such as
	// android.R.attr.editTextStyle or the name of a local attr.
	DefaultStyleAttr string
	// Traits are attached trait ids; duplicates collapse.
	Traits []TraitID
	// Name overrides the derived class name.
	Name string
	Hooks Hooks
	// Source names the manifest or provider the declaration came from.
	Source string
}

// Hooks are optional stencil-level extension points. Attrs and Init run
// before any trait, Type runs after init is sealed.
type Hooks struct {
	// Attrs returns code placed between obtainStyledAttributes and recycle.
	// An empty block skips the attribute block entirely.
	Attrs func(t *poet.TypeBuilder, init *poet.MethodBuilder, rClass poet.TypeName) poet.CodeBlock
	Init  func(t *poet.TypeBuilder, init *poet.MethodBuilder) error
	Type  func(t *poet.TypeBuilder) error
}

func (d StencilDeclaration) String() string {
	if d.Name != "" {
		return fmt.Sprintf("%s (%s)", d.BaseType, d.Name)
	}
	return d.BaseType
}

// Key identifies declarations that generate the same output, hooks aside.
// Attached traits form a set, so their order and repeats do not count.
func (d StencilDeclaration) Key() string {
	traits := make([]string, len(d.Traits))
	for i, t := range d.Traits {
		traits[i] = string(t)
	}
	slices.Sort(traits)
	traits = slices.Compact(traits)
	return strings.Join([]string{
		d.BaseType,
		fmt.Sprint(d.ConstructorArity),
		d.DefaultStyleAttr,
		d.Name,
		strings.Join(traits, ","),
	}, "|")
}

// GeneratedName returns the class name for the given run prefix.
func (d StencilDeclaration) GeneratedName(prefix string) (string, error) {
	if d.Name != "" {
		return d.Name, nil
	}
	base, err := poet.BestGuess(d.BaseType)
	if err != nil {
		return "", err
	}
	return prefix + strings.TrimPrefix(base.Simple(), StrippedPrefix), nil
}

// ResolvedStencil is a declaration bound to one run: name computed, global
// traits merged in.
type ResolvedStencil struct {
	Declaration StencilDeclaration
	Name        string
	Superclass  poet.TypeName
	// Traits is the effective trait list: globals first, then attached,
	// without duplicates.
	Traits []TraitID
}

// Resolve validates decl and binds it to the run's name prefix and global
// traits.
func Resolve(decl StencilDeclaration, cfg RunConfig, globals []TraitID) (ResolvedStencil, error) {
	if decl.ConstructorArity < MinConstructorArity || decl.ConstructorArity > MaxConstructorArity {
		return ResolvedStencil{}, errors.ConfigurationError(decl.String(),
			fmt.Sprintf("constructor arity %d is outside %d-%d", decl.ConstructorArity, MinConstructorArity, MaxConstructorArity)).
			WithSuggestion("use one of 1 (context), 2 (+attrs), 3 (+defStyleAttr) or 4 (+defStyleRes)")
	}

	superclass, err := poet.BestGuess(decl.BaseType)
	if err != nil {
		return ResolvedStencil{}, errors.ConfigurationError(decl.String(), "base type is not a fully-qualified class name").
			WithCause(err)
	}

	name, err := decl.GeneratedName(cfg.ViewNamePrefix)
	if err != nil {
		return ResolvedStencil{}, errors.ConfigurationError(decl.String(), "cannot derive class name").WithCause(err)
	}
	if !poet.IsIdentifier(name) {
		return ResolvedStencil{}, errors.ConfigurationError(decl.String(),
			fmt.Sprintf("generated name %q is not a valid class name", name))
	}

	return ResolvedStencil{
		Declaration: decl,
		Name:        name,
		Superclass:  superclass,
		Traits:      UnionTraits(globals, decl.Traits),
	}, nil
}

// UnionTraits concatenates the lists in order, keeping the first occurrence
// of every id.
func UnionTraits(lists ...[]TraitID) []TraitID {
	seen := make(map[TraitID]bool)
	var out []TraitID
	for _, list := range lists {
		for _, id := range list {
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
