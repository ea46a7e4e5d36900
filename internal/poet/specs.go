package poet

import "fmt"

// Annotation is an annotation use site.
type Annotation struct {
	Type    TypeName
	Members []AnnotationMember
}

// AnnotationMember is one name = value pair of an annotation.
type AnnotationMember struct {
	Name  string
	Value CodeBlock
}

// AnnotationOf returns a member-less annotation of type t.
func AnnotationOf(t TypeName) Annotation {
	return Annotation{Type: t}
}

// With returns a copy of a with an extra member. A single member named
// "value" renders without its name.
func (a Annotation) With(name, format string, args ...any) Annotation {
	members := make([]AnnotationMember, len(a.Members), len(a.Members)+1)
	copy(members, a.Members)
	a.Members = append(members, AnnotationMember{Name: name, Value: Code(format, args...)})
	return a
}

// Err returns the first malformed member value.
func (a Annotation) Err() error {
	for _, m := range a.Members {
		if err := m.Value.Err(); err != nil {
			return err
		}
	}
	return nil
}

// Parameter is a method or constructor parameter.
type Parameter struct {
	Name        string
	Type        TypeName
	Annotations []Annotation
}

// Param builds a Parameter.
func Param(name string, typ TypeName, annotations ...Annotation) Parameter {
	return Parameter{Name: name, Type: typ, Annotations: annotations}
}

// Field is a member variable. Kotlin renders Final fields as val and the
// rest as var.
type Field struct {
	Name        string
	Type        TypeName
	Modifiers   []Modifier
	Annotations []Annotation
	Initializer CodeBlock
}

// NewField builds a Field without an initializer.
func NewField(name string, typ TypeName, modifiers ...Modifier) Field {
	return Field{Name: name, Type: typ, Modifiers: modifiers}
}

// WithInitializer returns a copy of f initialized to the given fragment.
func (f Field) WithInitializer(format string, args ...any) Field {
	f.Initializer = Code(format, args...)
	return f
}

// Annotated returns a copy of f carrying the extra annotations.
func (f Field) Annotated(annotations ...Annotation) Field {
	f.Annotations = append(append([]Annotation(nil), f.Annotations...), annotations...)
	return f
}

func (f Field) err() error {
	if !isIdentifier(f.Name) {
		return fmt.Errorf("%w: invalid field name %q", ErrMalformedCode, f.Name)
	}
	if f.Type.IsZero() {
		return fmt.Errorf("%w: field %s has no type", ErrMalformedCode, f.Name)
	}
	if err := f.Initializer.Err(); err != nil {
		return err
	}
	for _, a := range f.Annotations {
		if err := a.Err(); err != nil {
			return err
		}
	}
	return nil
}

// Stmt is one entry of a method body.
type Stmt interface {
	isStmt()
}

// Statement is a terminated statement; Java appends a semicolon.
type Statement struct {
	Code CodeBlock
}

// Comment is a single line comment.
type Comment struct {
	Text string
}

// Local declares a local variable. Kotlin infers the type when Init is set.
type Local struct {
	Name  string
	Type  TypeName
	Init  CodeBlock
	Final bool
}

// Flow is a chain of braced blocks: if / else if / else, try / catch.
type Flow struct {
	Branches []Branch
}

// Branch is one header and its braced body.
type Branch struct {
	Header CodeBlock
	Body   []Stmt
}

func (Statement) isStmt() {}
func (Comment) isStmt()   {}
func (Local) isStmt()     {}
func (*Flow) isStmt()     {}

// DelegateKind selects the target of a constructor delegation.
type DelegateKind int

const (
	This DelegateKind = iota
	Super
)

func (k DelegateKind) String() string {
	if k == Super {
		return "super"
	}
	return "this"
}

// Delegation is the explicit this(...) or super(...) call of a constructor.
type Delegation struct {
	Kind DelegateKind
	Args []CodeBlock
}
