package dialect

import "github.com/toyz/artist/internal/poet"

// Types returns every type referenced by f in declaration order: class
// header first, then fields, constructors and methods. Parameterized types
// are returned whole; callers recurse into Args.
func Types(f *poet.File) []poet.TypeName {
	var w walker
	t := f.Type
	w.annotations(t.Annotations)
	w.add(t.Superclass)
	for _, i := range t.Interfaces {
		w.add(i)
	}
	for _, fd := range t.Fields {
		w.annotations(fd.Annotations)
		w.add(fd.Type)
		w.code(fd.Initializer)
	}
	for _, m := range t.Constructors {
		w.method(m)
	}
	for _, m := range t.Methods {
		w.method(m)
	}
	return w.out
}

type walker struct {
	out []poet.TypeName
}

func (w *walker) add(t poet.TypeName) {
	if !t.IsZero() {
		w.out = append(w.out, t)
	}
}

func (w *walker) code(c poet.CodeBlock) {
	w.out = append(w.out, c.Types()...)
}

func (w *walker) annotations(as []poet.Annotation) {
	for _, a := range as {
		w.add(a.Type)
		for _, m := range a.Members {
			w.code(m.Value)
		}
	}
}

func (w *walker) method(m *poet.Method) {
	w.annotations(m.Annotations)
	w.add(m.Returns)
	for _, p := range m.Params {
		w.annotations(p.Annotations)
		w.add(p.Type)
	}
	if m.Delegate != nil {
		for _, a := range m.Delegate.Args {
			w.code(a)
		}
	}
	w.stmts(m.Body)
}

func (w *walker) stmts(body []poet.Stmt) {
	for _, s := range body {
		switch s := s.(type) {
		case poet.Statement:
			w.code(s.Code)
		case poet.Local:
			w.add(s.Type)
			w.code(s.Init)
		case *poet.Flow:
			for _, br := range s.Branches {
				w.code(br.Header)
				w.stmts(br.Body)
			}
		}
	}
}
