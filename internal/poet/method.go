package poet

import (
	"errors"
	"fmt"
)

// Method is a built method or constructor.
type Method struct {
	Name        string
	Constructor bool
	Doc         []string
	Annotations []Annotation
	Modifiers   []Modifier
	Params      []Parameter
	// Returns is zero for void methods and constructors.
	Returns  TypeName
	Delegate *Delegation
	Body     []Stmt
}

// MethodBuilder accumulates a method. The first error encountered sticks
// and is returned by Err and Build; later calls are ignored.
type MethodBuilder struct {
	m    Method
	open []*Flow
	err  error
}

// NewMethod starts a method called name.
func NewMethod(name string) *MethodBuilder {
	b := &MethodBuilder{m: Method{Name: name}}
	if !isIdentifier(name) {
		b.err = fmt.Errorf("%w: invalid method name %q", ErrMalformedCode, name)
	}
	return b
}

// NewConstructor starts a constructor.
func NewConstructor() *MethodBuilder {
	return &MethodBuilder{m: Method{Constructor: true}}
}

func (b *MethodBuilder) Name() string       { return b.m.Name }
func (b *MethodBuilder) IsConstructor() bool { return b.m.Constructor }
func (b *MethodBuilder) Err() error          { return b.err }

func (b *MethodBuilder) fail(err error) {
	if b.err == nil && err != nil {
		b.err = err
	}
}

// AddDoc appends one line of documentation.
func (b *MethodBuilder) AddDoc(format string, args ...any) *MethodBuilder {
	b.m.Doc = append(b.m.Doc, fmt.Sprintf(format, args...))
	return b
}

func (b *MethodBuilder) AddAnnotation(a Annotation) *MethodBuilder {
	b.fail(a.Err())
	b.m.Annotations = append(b.m.Annotations, a)
	return b
}

// Annotations returns the annotations added so far.
func (b *MethodBuilder) Annotations() []Annotation {
	return b.m.Annotations
}

func (b *MethodBuilder) AddModifiers(mods ...Modifier) *MethodBuilder {
	for _, m := range mods {
		if !HasModifier(b.m.Modifiers, m) {
			b.m.Modifiers = append(b.m.Modifiers, m)
		}
	}
	return b
}

func (b *MethodBuilder) AddParameters(params ...Parameter) *MethodBuilder {
	for _, p := range params {
		for _, a := range p.Annotations {
			b.fail(a.Err())
		}
		b.m.Params = append(b.m.Params, p)
	}
	return b
}

// Parameters returns the parameters added so far.
func (b *MethodBuilder) Parameters() []Parameter {
	return b.m.Params
}

func (b *MethodBuilder) Returns(t TypeName) *MethodBuilder {
	if b.m.Constructor {
		b.fail(errors.New("constructors have no return type"))
		return b
	}
	b.m.Returns = t
	return b
}

// DelegateTo sets the constructor's this(...) or super(...) call.
func (b *MethodBuilder) DelegateTo(kind DelegateKind, args ...CodeBlock) *MethodBuilder {
	if !b.m.Constructor {
		b.fail(fmt.Errorf("%s(...) delegation on method %s", kind, b.m.Name))
		return b
	}
	for _, a := range args {
		b.fail(a.Err())
	}
	b.m.Delegate = &Delegation{Kind: kind, Args: args}
	return b
}

func (b *MethodBuilder) add(s Stmt) {
	if n := len(b.open); n > 0 {
		f := b.open[n-1]
		br := &f.Branches[len(f.Branches)-1]
		br.Body = append(br.Body, s)
		return
	}
	b.m.Body = append(b.m.Body, s)
}

// AddStatement appends a terminated statement.
func (b *MethodBuilder) AddStatement(format string, args ...any) *MethodBuilder {
	return b.AddCode(Code(format, args...))
}

// AddCode appends a prebuilt fragment as a statement.
func (b *MethodBuilder) AddCode(c CodeBlock) *MethodBuilder {
	b.fail(c.Err())
	b.add(Statement{Code: c})
	return b
}

func (b *MethodBuilder) AddComment(format string, args ...any) *MethodBuilder {
	b.add(Comment{Text: fmt.Sprintf(format, args...)})
	return b
}

// AddLocal declares a local variable initialized with the given fragment.
func (b *MethodBuilder) AddLocal(name string, typ TypeName, format string, args ...any) *MethodBuilder {
	init := Code(format, args...)
	b.fail(init.Err())
	if !isIdentifier(name) {
		b.fail(fmt.Errorf("%w: invalid local name %q", ErrMalformedCode, name))
	}
	b.add(Local{Name: name, Type: typ, Init: init, Final: true})
	return b
}

// BeginControlFlow opens a braced block, e.g. "if ($L != null)".
func (b *MethodBuilder) BeginControlFlow(format string, args ...any) *MethodBuilder {
	header := Code(format, args...)
	b.fail(header.Err())
	f := &Flow{Branches: []Branch{{Header: header}}}
	b.add(f)
	b.open = append(b.open, f)
	return b
}

// NextControlFlow closes the current block and opens a sibling, e.g. "else".
func (b *MethodBuilder) NextControlFlow(format string, args ...any) *MethodBuilder {
	if len(b.open) == 0 {
		b.fail(fmt.Errorf("%w: NextControlFlow without BeginControlFlow", ErrMalformedCode))
		return b
	}
	header := Code(format, args...)
	b.fail(header.Err())
	f := b.open[len(b.open)-1]
	f.Branches = append(f.Branches, Branch{Header: header})
	return b
}

func (b *MethodBuilder) EndControlFlow() *MethodBuilder {
	if len(b.open) == 0 {
		b.fail(fmt.Errorf("%w: EndControlFlow without BeginControlFlow", ErrMalformedCode))
		return b
	}
	b.open = b.open[:len(b.open)-1]
	return b
}

// Build returns the finished method.
func (b *MethodBuilder) Build() (*Method, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.Unclosed(); err != nil {
		return nil, err
	}
	m := b.m
	return &m, nil
}

// OpenFlows returns the number of control flow blocks not yet ended.
func (b *MethodBuilder) OpenFlows() int {
	return len(b.open)
}

// Unclosed reports control flow blocks left open, nil when balanced.
func (b *MethodBuilder) Unclosed() error {
	if len(b.open) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d unclosed control flow block(s) in %s", ErrMalformedCode, len(b.open), b.describe())
}

func (b *MethodBuilder) describe() string {
	if b.m.Constructor {
		return "constructor"
	}
	return b.m.Name
}
