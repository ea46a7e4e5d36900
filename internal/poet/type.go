package poet

import "fmt"

// Type is a built class declaration.
type Type struct {
	Name         string
	Language     Language
	Doc          []string
	Annotations  []Annotation
	Modifiers    []Modifier
	Superclass   TypeName
	Interfaces   []TypeName
	Fields       []Field
	Constructors []*Method
	Methods      []*Method
}

// TypeBuilder accumulates a class. Like MethodBuilder, the first error
// sticks.
type TypeBuilder struct {
	t   Type
	err error
}

// NewClass starts a class called name for the given dialect.
func NewClass(name string, lang Language) *TypeBuilder {
	b := &TypeBuilder{t: Type{Name: name, Language: lang}}
	if !isIdentifier(name) {
		b.err = fmt.Errorf("%w: invalid class name %q", ErrMalformedCode, name)
	}
	return b
}

// Name returns the class name.
func (b *TypeBuilder) Name() string { return b.t.Name }

// Language returns the dialect the class will be rendered in. Traits use it
// to pick dialect-specific spellings.
func (b *TypeBuilder) Language() Language { return b.t.Language }

// Err returns the first recorded error.
func (b *TypeBuilder) Err() error { return b.err }

func (b *TypeBuilder) fail(err error) {
	if b.err == nil && err != nil {
		b.err = err
	}
}

func (b *TypeBuilder) AddDoc(format string, args ...any) *TypeBuilder {
	b.t.Doc = append(b.t.Doc, fmt.Sprintf(format, args...))
	return b
}

func (b *TypeBuilder) AddAnnotation(a Annotation) *TypeBuilder {
	b.fail(a.Err())
	b.t.Annotations = append(b.t.Annotations, a)
	return b
}

func (b *TypeBuilder) AddModifiers(mods ...Modifier) *TypeBuilder {
	for _, m := range mods {
		if !HasModifier(b.t.Modifiers, m) {
			b.t.Modifiers = append(b.t.Modifiers, m)
		}
	}
	return b
}

func (b *TypeBuilder) Superclass(t TypeName) *TypeBuilder {
	b.t.Superclass = t
	return b
}

func (b *TypeBuilder) AddSuperinterface(t TypeName) *TypeBuilder {
	b.t.Interfaces = append(b.t.Interfaces, t)
	return b
}

// AddField adds f; a second field with the same name is an error.
func (b *TypeBuilder) AddField(f Field) *TypeBuilder {
	b.fail(f.err())
	if b.HasField(f.Name) {
		b.fail(fmt.Errorf("duplicate field %s in %s", f.Name, b.t.Name))
		return b
	}
	b.t.Fields = append(b.t.Fields, f)
	return b
}

// AddMethod builds m and adds it as a constructor or a method.
func (b *TypeBuilder) AddMethod(m *MethodBuilder) *TypeBuilder {
	built, err := m.Build()
	if err != nil {
		b.fail(err)
		return b
	}
	if built.Constructor {
		b.t.Constructors = append(b.t.Constructors, built)
	} else {
		b.t.Methods = append(b.t.Methods, built)
	}
	return b
}

func (b *TypeBuilder) HasField(name string) bool {
	for _, f := range b.t.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

func (b *TypeBuilder) HasMethod(name string) bool {
	for _, m := range b.t.Methods {
		if m.Name == name {
			return true
		}
	}
	return false
}

// Snapshot returns the current state without validating it.
func (b *TypeBuilder) Snapshot() Type {
	return b.t
}

// Build returns the finished class.
func (b *TypeBuilder) Build() (*Type, error) {
	if b.err != nil {
		return nil, b.err
	}
	t := b.t
	return &t, nil
}

// File is a compilation unit holding one top-level class.
type File struct {
	Package string
	Comment []string
	Type    *Type
}

// NewFile wraps t in a file declaring pkg.
func NewFile(pkg string, t *Type) *File {
	return &File{Package: pkg, Type: t}
}

// AddComment appends a file header comment line.
func (f *File) AddComment(line string) *File {
	f.Comment = append(f.Comment, line)
	return f
}

// SelfName is the class name declared by the file.
func (f *File) SelfName() TypeName {
	return ClassName(f.Package, f.Type.Name)
}
