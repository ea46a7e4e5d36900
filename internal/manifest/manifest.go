// Package manifest reads stencil declarations from files. Three formats are
// supported, chosen by extension:
//
//	.yaml, .yml   YAML document with global_traits and a stencils list
//	.toml         the same document as TOML, stencils as [[stencils]]
//	.stencil      a line-oriented DSL:
//
//	    # comment
//	    global visibility, suppress-nullability
//	    stencil android.widget.ImageView(3)
//	    stencil androidx.appcompat.widget.AppCompatEditText(3) style "android.R.attr.editTextStyle" traits rx.text-input
//	    stencil android.widget.Button traits rx.view as FancyButton
//
// A stencil without an explicit constructor count gets all four canonical
// constructors.
package manifest

import (
	"fmt"

	"github.com/toyz/artist/internal/errors"
	"github.com/toyz/artist/internal/models"
	"github.com/toyz/artist/internal/utils"
)

// Manifest is one parsed manifest file. It is a models.StencilProvider.
type Manifest struct {
	Path         string
	Globals      []models.TraitID
	Declarations []models.StencilDeclaration
}

func (m *Manifest) Name() string                          { return m.Path }
func (m *Manifest) Stencils() []models.StencilDeclaration { return m.Declarations }
func (m *Manifest) GlobalTraits() []models.TraitID        { return m.Globals }

// document is the YAML and TOML shape of a manifest
type document struct {
	GlobalTraits []string `yaml:"global_traits" toml:"global_traits"`
	Stencils     []entry  `yaml:"stencils" toml:"stencils"`
}

// entry is one stencil as written in a manifest
type entry struct {
	Type         string   `yaml:"type" toml:"type"`
	Constructors *int     `yaml:"constructors" toml:"constructors"`
	Style        string   `yaml:"style" toml:"style"`
	Traits       []string `yaml:"traits" toml:"traits"`
	Name         string   `yaml:"name" toml:"name"`
}

func (e entry) arity() int {
	if e.Constructors == nil {
		return models.DefaultConstructorArity
	}
	return *e.Constructors
}

var (
	validateType   = utils.ValidateQualifiedClassName("type")
	validateArity  = utils.IntInRange("constructors", models.MinConstructorArity, models.MaxConstructorArity)
	validateStyle  = utils.ValidateStyleAttr("style")
	validateTraits = utils.ValidateEach("traits", utils.ValidateTraitID("trait"))
	validateName   = utils.Conditional(
		func(name string) bool { return name != "" },
		utils.IsJavaIdentifier("name"),
	)
)

func (e entry) validate() error {
	if err := validateType(e.Type); err != nil {
		return err
	}
	if err := validateArity(e.arity()); err != nil {
		return err
	}
	if err := validateStyle(e.Style); err != nil {
		return err
	}
	if err := validateTraits(e.Traits); err != nil {
		return err
	}
	return validateName(e.Name)
}

func (e entry) declaration(source string) models.StencilDeclaration {
	return models.StencilDeclaration{
		BaseType:         e.Type,
		ConstructorArity: e.arity(),
		DefaultStyleAttr: e.Style,
		Traits:           traitIDs(e.Traits),
		Name:             e.Name,
		Source:           source,
	}
}

func traitIDs(ids []string) []models.TraitID {
	if len(ids) == 0 {
		return nil
	}
	out := make([]models.TraitID, len(ids))
	for i, id := range ids {
		out[i] = models.TraitID(id)
	}
	return out
}

// build validates a decoded manifest. locate returns the position of the
// i-th stencil, or the zero location when the format does not track it.
func build(path string, globals []string, entries []entry, locate func(i int) errors.SourceLocation) (*Manifest, error) {
	if err := validateTraits(globals); err != nil {
		return nil, invalid(path, "global traits", err, errors.SourceLocation{File: path})
	}

	m := &Manifest{Path: path, Globals: traitIDs(globals)}
	for i, e := range entries {
		if err := e.validate(); err != nil {
			loc := locate(i)
			if loc.IsEmpty() {
				loc = errors.SourceLocation{File: path}
			}
			subject := fmt.Sprintf("stencil #%d", i+1)
			if e.Type != "" {
				subject = fmt.Sprintf("stencil #%d (%s)", i+1, e.Type)
			}
			return nil, invalid(path, subject, err, loc)
		}
		m.Declarations = append(m.Declarations, e.declaration(path))
	}
	return m, nil
}

func invalid(path, subject string, cause error, loc errors.SourceLocation) error {
	return errors.ConfigurationError(path, subject+" is invalid").
		WithCause(cause).
		WithLocation(loc)
}

func syntaxError(path string, cause error, loc errors.SourceLocation) error {
	if loc.IsEmpty() {
		loc = errors.SourceLocation{File: path}
	}
	return errors.WrapConfigurationError(path, "parse", cause).
		WithLocation(loc).
		WithSuggestion("see the manifest package documentation for the accepted formats")
}

func noLocation(int) errors.SourceLocation { return errors.SourceLocation{} }
