// Package kotlin renders poet files as Kotlin source.
package kotlin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/toyz/artist/internal/dialect"
	"github.com/toyz/artist/internal/dialect/java"
	"github.com/toyz/artist/internal/poet"
)

// Dialect is the Kotlin implementation of dialect.Dialect.
type Dialect struct{}

// New returns the Kotlin dialect.
func New() *Dialect { return &Dialect{} }

func (*Dialect) Name() string            { return "kotlin" }
func (*Dialect) Language() poet.Language { return poet.Kotlin }
func (*Dialect) FileExtension() string   { return ".kt" }

// Render emits f as Kotlin. The class has no primary constructor; every
// constructor is a secondary one delegating with this(...) or super(...).
func (*Dialect) Render(f *poet.File) (string, error) {
	if f == nil || f.Type == nil {
		return "", errors.New("nothing to render")
	}
	r := newRenderer(f)
	if err := r.file(); err != nil {
		return "", err
	}
	return r.w.String(), nil
}

// Format checks delimiter balance, collapses empty bodies and normalizes
// whitespace. Kotlin output is otherwise written as rendered.
func (*Dialect) Format(src string) (string, error) {
	if err := dialect.CheckBalance(src); err != nil {
		return "", err
	}
	return dialect.Normalize(dialect.CollapseEmptyBlocks(src)), nil
}

type renderer struct {
	f  *poet.File
	im *dialect.ImportManager
	w  *dialect.LineWriter
}

func newRenderer(f *poet.File) *renderer {
	r := &renderer{
		f:  f,
		im: dialect.NewImportManager(f.SelfName(), "kotlin"),
		w:  dialect.NewLineWriter("  "),
	}
	for _, t := range dialect.Types(f) {
		r.register(t)
	}
	return r
}

func (r *renderer) register(t poet.TypeName) {
	r.im.Add(classOf(t))
	for _, a := range t.Args() {
		r.register(a)
	}
}

// classOf maps primitives and builtins onto the kotlin package.
func classOf(t poet.TypeName) poet.TypeName {
	switch t.Kind() {
	case poet.KindClass:
		return t
	case poet.KindVoid:
		return poet.ClassName("kotlin", "Unit")
	case poet.KindInt:
		return poet.ClassName("kotlin", "Int")
	case poet.KindLong:
		return poet.ClassName("kotlin", "Long")
	case poet.KindFloat:
		return poet.ClassName("kotlin", "Float")
	case poet.KindBoolean:
		return poet.ClassName("kotlin", "Boolean")
	case poet.KindString:
		return poet.ClassName("kotlin", "String")
	case poet.KindCharSequence:
		return poet.ClassName("kotlin", "CharSequence")
	case poet.KindObject:
		return poet.ClassName("kotlin", "Any")
	}
	return poet.TypeName{}
}

// TypeRef implements poet.CodeRenderer.
func (r *renderer) TypeRef(t poet.TypeName) string {
	s := r.im.Ref(classOf(t))
	if args := t.Args(); len(args) > 0 {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = r.TypeRef(a)
		}
		s += "<" + strings.Join(parts, ", ") + ">"
	}
	if t.Nullable() {
		s += "?"
	}
	return s
}

// StringLiteral implements poet.CodeRenderer. Dollar signs are escaped so
// they do not start string templates.
func (r *renderer) StringLiteral(s string) string {
	return strings.ReplaceAll(java.Quote(s), "$", `\$`)
}

func (r *renderer) file() error {
	for _, c := range r.f.Comment {
		r.w.Line("// %s", c)
	}
	if len(r.f.Comment) > 0 {
		r.w.Blank()
	}
	if r.f.Package != "" {
		r.w.Line("package %s", r.f.Package)
		r.w.Blank()
	}
	if imports := r.im.Imports(); len(imports) > 0 {
		for _, imp := range imports {
			r.w.Line("import %s", imp)
		}
		r.w.Blank()
	}
	return r.class(r.f.Type)
}

func (r *renderer) class(t *poet.Type) error {
	if poet.HasModifier(t.Modifiers, poet.Static) {
		return fmt.Errorf("kotlin has no static classes: %s", t.Name)
	}
	r.doc(t.Doc)
	r.annotations(t.Annotations)

	header := modifiers(t.Modifiers) + "class " + t.Name
	var supers []string
	if !t.Superclass.IsZero() {
		supers = append(supers, r.TypeRef(t.Superclass))
	}
	for _, it := range t.Interfaces {
		supers = append(supers, r.TypeRef(it))
	}
	if len(supers) > 0 {
		header += " : " + strings.Join(supers, ", ")
	}
	r.w.Line("%s {", header)
	r.w.In()

	first := true
	sep := func() {
		if !first {
			r.w.Blank()
		}
		first = false
	}
	for _, f := range t.Fields {
		if poet.HasModifier(f.Modifiers, poet.Static) {
			return fmt.Errorf("kotlin has no static fields: %s.%s", t.Name, f.Name)
		}
		sep()
		r.field(f)
	}
	for _, m := range t.Constructors {
		sep()
		r.constructor(m)
	}
	for _, m := range t.Methods {
		if poet.HasModifier(m.Modifiers, poet.Static) {
			return fmt.Errorf("kotlin has no static methods: %s.%s", t.Name, m.Name)
		}
		sep()
		r.method(m)
	}

	r.w.Out()
	r.w.Line("}")
	return nil
}

func (r *renderer) doc(lines []string) {
	if len(lines) == 0 {
		return
	}
	r.w.Line("/**")
	for _, l := range lines {
		if l == "" {
			r.w.Line(" *")
		} else {
			r.w.Line(" * %s", l)
		}
	}
	r.w.Line(" */")
}

func (r *renderer) annotation(a poet.Annotation) string {
	s := "@" + r.TypeRef(a.Type)
	switch {
	case len(a.Members) == 0:
	case len(a.Members) == 1 && a.Members[0].Name == "value":
		s += "(" + a.Members[0].Value.Render(r) + ")"
	default:
		parts := make([]string, len(a.Members))
		for i, m := range a.Members {
			parts[i] = m.Name + " = " + m.Value.Render(r)
		}
		s += "(" + strings.Join(parts, ", ") + ")"
	}
	return s
}

func (r *renderer) annotations(as []poet.Annotation) {
	for _, a := range as {
		r.w.Line("%s", r.annotation(a))
	}
}

func (r *renderer) field(f poet.Field) {
	r.annotations(f.Annotations)
	decl := modifiers(f.Modifiers)
	switch {
	case poet.HasModifier(f.Modifiers, poet.Final):
		decl += "val "
	case f.Initializer.IsEmpty() && !f.Type.Nullable() && f.Type.Kind() == poet.KindClass:
		decl += "lateinit var "
	default:
		decl += "var "
	}
	decl += f.Name + ": " + r.TypeRef(f.Type)
	switch {
	case !f.Initializer.IsEmpty():
		decl += " = " + f.Initializer.Render(r)
	case f.Type.Nullable():
		decl += " = null"
	}
	r.w.Line("%s", decl)
}

func (r *renderer) params(ps []poet.Parameter) string {
	out := make([]string, len(ps))
	for i, p := range ps {
		var b strings.Builder
		for _, a := range p.Annotations {
			b.WriteString(r.annotation(a))
			b.WriteByte(' ')
		}
		b.WriteString(p.Name)
		b.WriteString(": ")
		b.WriteString(r.TypeRef(p.Type))
		out[i] = b.String()
	}
	return strings.Join(out, ", ")
}

func (r *renderer) constructor(m *poet.Method) {
	r.doc(m.Doc)
	r.annotations(m.Annotations)

	sig := modifiers(m.Modifiers) + "constructor(" + r.params(m.Params) + ")"
	if m.Delegate != nil {
		args := make([]string, len(m.Delegate.Args))
		for i, a := range m.Delegate.Args {
			args[i] = a.Render(r)
		}
		sig += fmt.Sprintf(" : %s(%s)", m.Delegate.Kind, strings.Join(args, ", "))
	}
	if len(m.Body) == 0 {
		r.w.Line("%s", sig)
		return
	}
	r.w.Line("%s {", sig)
	r.w.In()
	r.stmts(m.Body)
	r.w.Out()
	r.w.Line("}")
}

func (r *renderer) method(m *poet.Method) {
	r.doc(m.Doc)
	r.annotations(m.Annotations)

	sig := modifiers(m.Modifiers) + "fun " + m.Name + "(" + r.params(m.Params) + ")"
	if !m.Returns.IsZero() && m.Returns.Kind() != poet.KindVoid {
		sig += ": " + r.TypeRef(m.Returns)
	}
	if poet.HasModifier(m.Modifiers, poet.Abstract) {
		r.w.Line("%s", sig)
		return
	}
	r.w.Line("%s {", sig)
	r.w.In()
	r.stmts(m.Body)
	r.w.Out()
	r.w.Line("}")
}

func (r *renderer) stmts(body []poet.Stmt) {
	for _, s := range body {
		switch s := s.(type) {
		case poet.Statement:
			r.w.Line("%s", s.Code.Render(r))
		case poet.Comment:
			r.w.Line("// %s", s.Text)
		case poet.Local:
			kw := "var"
			if s.Final {
				kw = "val"
			}
			r.w.Line("%s %s: %s = %s", kw, s.Name, r.TypeRef(s.Type), s.Init.Render(r))
		case *poet.Flow:
			for i, br := range s.Branches {
				if i == 0 {
					r.w.Line("%s {", br.Header.Render(r))
				} else {
					r.w.Line("} %s {", br.Header.Render(r))
				}
				r.w.In()
				r.stmts(br.Body)
				r.w.Out()
			}
			r.w.Line("}")
		}
	}
}

// modifiers spells Kotlin modifiers followed by a space. Public is the
// default visibility and Override implies Open; Static and Final have no
// keyword here.
func modifiers(mods []poet.Modifier) string {
	var parts []string
	for _, v := range []poet.Modifier{poet.Private, poet.Protected} {
		if poet.HasModifier(mods, v) {
			parts = append(parts, v.String())
		}
	}
	switch {
	case poet.HasModifier(mods, poet.Abstract):
		parts = append(parts, "abstract")
	case poet.HasModifier(mods, poet.Override):
		parts = append(parts, "override")
	case poet.HasModifier(mods, poet.Open):
		parts = append(parts, "open")
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " ") + " "
}
