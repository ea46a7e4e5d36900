package models

// StencilProvider supplies stencil declarations and the trait ids applied
// to every stencil.
type StencilProvider interface {
	Name() string
	Stencils() []StencilDeclaration
	GlobalTraits() []TraitID
}

// StaticProvider is a StencilProvider over fixed values.
type StaticProvider struct {
	ID           string
	Declarations []StencilDeclaration
	Globals      []TraitID
}

func (p StaticProvider) Name() string                   { return p.ID }
func (p StaticProvider) Stencils() []StencilDeclaration { return p.Declarations }
func (p StaticProvider) GlobalTraits() []TraitID        { return p.Globals }

// GeneratedFile records one written file
type GeneratedFile struct {
	Stencil  string    // declaration the file was generated from
	TypeName string    // generated class name
	Path     string    // path the file was written to
	Applied  []TraitID // traits that contributed
	Skipped  []TraitID // traits referenced but not registered or not supported
}

// GenerationSummary describes a finished run
type GenerationSummary struct {
	Dialect   string
	OutputDir string
	Formatted bool
	Files     []GeneratedFile
}

// TraitsApplied counts trait applications across all files.
func (s *GenerationSummary) TraitsApplied() int {
	n := 0
	for _, f := range s.Files {
		n += len(f.Applied)
	}
	return n
}

// TraitsSkipped counts unresolved trait references across all files.
func (s *GenerationSummary) TraitsSkipped() int {
	n := 0
	for _, f := range s.Files {
		n += len(f.Skipped)
	}
	return n
}
