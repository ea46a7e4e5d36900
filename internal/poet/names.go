// Package poet is a small dialect-neutral model of a JVM source file: type
// names, code fragments, methods, fields and classes. The dialect packages
// render the model as Java or Kotlin source.
package poet

import (
	"fmt"
	"strings"
)

// Language identifies a target source dialect.
type Language int

const (
	Java Language = iota
	Kotlin
)

func (l Language) String() string {
	switch l {
	case Java:
		return "java"
	case Kotlin:
		return "kotlin"
	default:
		return fmt.Sprintf("language(%d)", int(l))
	}
}

// Kind classifies a TypeName.
type Kind int

const (
	KindClass Kind = iota
	KindVoid
	KindInt
	KindLong
	KindFloat
	KindBoolean
	// Builtins map to java.lang.* or kotlin.* depending on the dialect.
	KindString
	KindCharSequence
	KindObject
)

// TypeName references a class, a primitive or a dialect builtin. The zero
// value is invalid; use IsZero to test for it.
type TypeName struct {
	kind     Kind
	pkg      string
	simple   string
	nullable bool
	args     []TypeName
	valid    bool
}

var (
	Void         = TypeName{kind: KindVoid, valid: true}
	Int          = TypeName{kind: KindInt, valid: true}
	Long         = TypeName{kind: KindLong, valid: true}
	Float        = TypeName{kind: KindFloat, valid: true}
	Boolean      = TypeName{kind: KindBoolean, valid: true}
	String       = TypeName{kind: KindString, valid: true}
	CharSequence = TypeName{kind: KindCharSequence, valid: true}
	Object       = TypeName{kind: KindObject, valid: true}
)

// ClassName returns a reference to pkg.simple.
func ClassName(pkg, simple string) TypeName {
	return TypeName{kind: KindClass, pkg: pkg, simple: simple, valid: true}
}

// BestGuess splits a fully-qualified dotted name into package and simple
// name at the last dot.
func BestGuess(qualified string) (TypeName, error) {
	i := strings.LastIndex(qualified, ".")
	if i <= 0 || i == len(qualified)-1 {
		return TypeName{}, fmt.Errorf("%q is not a fully-qualified class name", qualified)
	}
	pkg, simple := qualified[:i], qualified[i+1:]
	if !isIdentifier(simple) {
		return TypeName{}, fmt.Errorf("%q is not a valid class name", simple)
	}
	for _, part := range strings.Split(pkg, ".") {
		if !isIdentifier(part) {
			return TypeName{}, fmt.Errorf("%q is not a valid package name", pkg)
		}
	}
	return ClassName(pkg, simple), nil
}

// MustBestGuess is BestGuess for names known at compile time.
func MustBestGuess(qualified string) TypeName {
	t, err := BestGuess(qualified)
	if err != nil {
		panic(err)
	}
	return t
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

func (t TypeName) Kind() Kind        { return t.kind }
func (t TypeName) Package() string   { return t.pkg }
func (t TypeName) Simple() string    { return t.simple }
func (t TypeName) Nullable() bool    { return t.nullable }
func (t TypeName) Args() []TypeName  { return t.args }
func (t TypeName) IsZero() bool      { return !t.valid }
func (t TypeName) IsPrimitive() bool { return t.kind >= KindVoid && t.kind <= KindBoolean }

// Canonical returns the dotted name of a class reference.
func (t TypeName) Canonical() string {
	if t.pkg == "" {
		return t.simple
	}
	return t.pkg + "." + t.simple
}

// AsNullable marks the type as nullable. Java ignores the flag; Kotlin
// renders it as T?.
func (t TypeName) AsNullable() TypeName {
	t.nullable = true
	return t
}

// WithArgs returns the type parameterized by args.
func (t TypeName) WithArgs(args ...TypeName) TypeName {
	t.args = append([]TypeName(nil), args...)
	return t
}

// Equal compares two type names structurally.
func (t TypeName) Equal(o TypeName) bool {
	if t.kind != o.kind || t.pkg != o.pkg || t.simple != o.simple ||
		t.nullable != o.nullable || t.valid != o.valid || len(t.args) != len(o.args) {
		return false
	}
	for i := range t.args {
		if !t.args[i].Equal(o.args[i]) {
			return false
		}
	}
	return true
}

func (t TypeName) String() string {
	var b strings.Builder
	switch t.kind {
	case KindClass:
		b.WriteString(t.Canonical())
	case KindVoid:
		b.WriteString("void")
	case KindInt:
		b.WriteString("int")
	case KindLong:
		b.WriteString("long")
	case KindFloat:
		b.WriteString("float")
	case KindBoolean:
		b.WriteString("boolean")
	case KindString:
		b.WriteString("String")
	case KindCharSequence:
		b.WriteString("CharSequence")
	case KindObject:
		b.WriteString("Object")
	}
	if len(t.args) > 0 {
		b.WriteString("<")
		for i, a := range t.args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.String())
		}
		b.WriteString(">")
	}
	if t.nullable {
		b.WriteString("?")
	}
	return b.String()
}

// Modifier is a declaration modifier. Dialects drop modifiers they have no
// spelling for: Java ignores Open, Kotlin omits Public.
type Modifier int

const (
	Public Modifier = iota
	Protected
	Private
	Static
	Final
	Abstract
	Open
	Override
)

func (m Modifier) String() string {
	return [...]string{"public", "protected", "private", "static", "final", "abstract", "open", "override"}[m]
}

// HasModifier reports whether mods contains m.
func HasModifier(mods []Modifier, m Modifier) bool {
	for _, x := range mods {
		if x == m {
			return true
		}
	}
	return false
}

// IsIdentifier reports whether s is a valid JVM identifier.
func IsIdentifier(s string) bool {
	return isIdentifier(s)
}
