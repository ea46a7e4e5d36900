// Package java renders poet files as Java source.
package java

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/toyz/artist/internal/dialect"
	"github.com/toyz/artist/internal/poet"
)

// Dialect is the Java implementation of dialect.Dialect.
type Dialect struct{}

// New returns the Java dialect.
func New() *Dialect { return &Dialect{} }

func (*Dialect) Name() string            { return "java" }
func (*Dialect) Language() poet.Language { return poet.Java }
func (*Dialect) FileExtension() string   { return ".java" }

// Render emits f as unformatted Java.
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

type renderer struct {
	f  *poet.File
	im *dialect.ImportManager
	w  *dialect.LineWriter
}

func newRenderer(f *poet.File) *renderer {
	r := &renderer{
		f:  f,
		im: dialect.NewImportManager(f.SelfName(), "java.lang"),
		w:  dialect.NewLineWriter("  "),
	}
	for _, t := range dialect.Types(f) {
		r.register(t, false)
	}
	return r
}

func (r *renderer) register(t poet.TypeName, boxed bool) {
	r.im.Add(classOf(t, boxed))
	for _, a := range t.Args() {
		r.register(a, true)
	}
}

func javaLang(simple string) poet.TypeName {
	return poet.ClassName("java.lang", simple)
}

// classOf maps builtins, and primitives in boxed position, to their
// java.lang classes. Other primitives yield the zero TypeName.
func classOf(t poet.TypeName, boxed bool) poet.TypeName {
	switch t.Kind() {
	case poet.KindClass:
		return t
	case poet.KindString:
		return javaLang("String")
	case poet.KindCharSequence:
		return javaLang("CharSequence")
	case poet.KindObject:
		return javaLang("Object")
	}
	if !boxed {
		return poet.TypeName{}
	}
	switch t.Kind() {
	case poet.KindVoid:
		return javaLang("Void")
	case poet.KindInt:
		return javaLang("Integer")
	case poet.KindLong:
		return javaLang("Long")
	case poet.KindFloat:
		return javaLang("Float")
	case poet.KindBoolean:
		return javaLang("Boolean")
	}
	return poet.TypeName{}
}

var primitives = map[poet.Kind]string{
	poet.KindVoid:    "void",
	poet.KindInt:     "int",
	poet.KindLong:    "long",
	poet.KindFloat:   "float",
	poet.KindBoolean: "boolean",
}

// TypeRef implements poet.CodeRenderer.
func (r *renderer) TypeRef(t poet.TypeName) string {
	return r.typeRef(t, false)
}

func (r *renderer) typeRef(t poet.TypeName, boxed bool) string {
	var s string
	if c := classOf(t, boxed); !c.IsZero() {
		s = r.im.Ref(c)
	} else {
		s = primitives[t.Kind()]
	}
	if args := t.Args(); len(args) > 0 {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = r.typeRef(a, true)
		}
		s += "<" + strings.Join(parts, ", ") + ">"
	}
	return s
}

// StringLiteral implements poet.CodeRenderer.
func (r *renderer) StringLiteral(s string) string {
	return Quote(s)
}

// Quote returns s as a Java string literal.
func Quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, c := range s {
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if c < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, c)
			} else {
				b.WriteRune(c)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

func (r *renderer) file() error {
	for _, c := range r.f.Comment {
		r.w.Line("// %s", c)
	}
	if len(r.f.Comment) > 0 {
		r.w.Blank()
	}
	if r.f.Package != "" {
		r.w.Line("package %s;", r.f.Package)
		r.w.Blank()
	}
	if imports := r.im.Imports(); len(imports) > 0 {
		for _, imp := range imports {
			r.w.Line("import %s;", imp)
		}
		r.w.Blank()
	}
	return r.class(r.f.Type)
}

func (r *renderer) class(t *poet.Type) error {
	r.doc(t.Doc)
	r.annotations(t.Annotations)

	header := modifiers(t.Modifiers) + "class " + t.Name
	if !t.Superclass.IsZero() {
		header += " extends " + r.TypeRef(t.Superclass)
	}
	if len(t.Interfaces) > 0 {
		refs := make([]string, len(t.Interfaces))
		for i, it := range t.Interfaces {
			refs[i] = r.TypeRef(it)
		}
		header += " implements " + strings.Join(refs, ", ")
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
		sep()
		r.field(f)
	}
	for _, m := range t.Constructors {
		sep()
		r.method(t, m)
	}
	for _, m := range t.Methods {
		sep()
		r.method(t, m)
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
	decl := modifiers(f.Modifiers) + r.TypeRef(f.Type) + " " + f.Name
	if !f.Initializer.IsEmpty() {
		decl += " = " + f.Initializer.Render(r)
	}
	r.w.Line("%s;", decl)
}

func (r *renderer) method(t *poet.Type, m *poet.Method) {
	r.doc(m.Doc)
	if poet.HasModifier(m.Modifiers, poet.Override) {
		r.w.Line("@Override")
	}
	r.annotations(m.Annotations)

	sig := modifiers(m.Modifiers)
	if m.Constructor {
		sig += t.Name
	} else {
		ret := "void"
		if !m.Returns.IsZero() {
			ret = r.TypeRef(m.Returns)
		}
		sig += ret + " " + m.Name
	}
	params := make([]string, len(m.Params))
	for i, p := range m.Params {
		var b strings.Builder
		for _, a := range p.Annotations {
			b.WriteString(r.annotation(a))
			b.WriteByte(' ')
		}
		b.WriteString(r.TypeRef(p.Type))
		b.WriteByte(' ')
		b.WriteString(p.Name)
		params[i] = b.String()
	}
	sig += "(" + strings.Join(params, ", ") + ")"

	if poet.HasModifier(m.Modifiers, poet.Abstract) {
		r.w.Line("%s;", sig)
		return
	}
	r.w.Line("%s {", sig)
	r.w.In()
	if m.Delegate != nil {
		args := make([]string, len(m.Delegate.Args))
		for i, a := range m.Delegate.Args {
			args[i] = a.Render(r)
		}
		r.w.Line("%s(%s);", m.Delegate.Kind, strings.Join(args, ", "))
	}
	r.stmts(m.Body)
	r.w.Out()
	r.w.Line("}")
}

func (r *renderer) stmts(body []poet.Stmt) {
	for _, s := range body {
		switch s := s.(type) {
		case poet.Statement:
			r.w.Line("%s;", s.Code.Render(r))
		case poet.Comment:
			r.w.Line("// %s", s.Text)
		case poet.Local:
			r.w.Line("%s %s = %s;", r.TypeRef(s.Type), s.Name, s.Init.Render(r))
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

var modifierOrder = map[poet.Modifier]int{
	poet.Public:    0,
	poet.Protected: 0,
	poet.Private:   0,
	poet.Abstract:  1,
	poet.Static:    2,
	poet.Final:     3,
}

// modifiers spells the Java modifiers in canonical order followed by a
// space. Open and Override have no Java keyword.
func modifiers(mods []poet.Modifier) string {
	var kept []poet.Modifier
	for _, m := range mods {
		if _, ok := modifierOrder[m]; ok {
			kept = append(kept, m)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return modifierOrder[kept[i]] < modifierOrder[kept[j]]
	})
	var b strings.Builder
	for _, m := range kept {
		b.WriteString(m.String())
		b.WriteByte(' ')
	}
	return b.String()
}
