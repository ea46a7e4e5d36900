package poet

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedCode is wrapped by every error produced while parsing a code
// format string.
var ErrMalformedCode = errors.New("malformed code fragment")

type segmentKind int

const (
	segText segmentKind = iota
	segType
	segString
	segCode
)

type segment struct {
	kind segmentKind
	text string
	typ  TypeName
	code CodeBlock
}

// CodeBlock is an expression or statement fragment. Format strings accept
//
//	$T  a TypeName, rendered as an imported simple name
//	$S  a string, rendered as a quoted literal
//	$L  a literal: string, number, bool or nested CodeBlock
//	$N  an identifier
//	$$  a dollar sign
//
// A malformed format does not panic; the error travels with the block and
// is reported by whichever builder receives it.
type CodeBlock struct {
	segments []segment
	err      error
}

// Code parses format against args.
func Code(format string, args ...any) CodeBlock {
	var (
		c    CodeBlock
		text strings.Builder
		next int
	)
	flush := func() {
		if text.Len() > 0 {
			c.segments = append(c.segments, segment{kind: segText, text: text.String()})
			text.Reset()
		}
	}

	for i := 0; i < len(format); i++ {
		ch := format[i]
		if ch != '$' {
			text.WriteByte(ch)
			continue
		}
		if i+1 >= len(format) {
			return malformed("dangling '$' in %q", format)
		}
		i++
		p := format[i]
		if p == '$' {
			text.WriteByte('$')
			continue
		}
		if next >= len(args) {
			return malformed("missing argument for $%c in %q", p, format)
		}
		arg := args[next]
		next++

		switch p {
		case 'T':
			tn, ok := arg.(TypeName)
			if !ok || tn.IsZero() {
				return malformed("$T expects a poet.TypeName, got %T", arg)
			}
			flush()
			c.segments = append(c.segments, segment{kind: segType, typ: tn})
		case 'S':
			s, ok := arg.(string)
			if !ok {
				return malformed("$S expects a string, got %T", arg)
			}
			flush()
			c.segments = append(c.segments, segment{kind: segString, text: s})
		case 'N':
			s, ok := arg.(string)
			if !ok || !isIdentifier(s) {
				return malformed("$N expects an identifier, got %v", arg)
			}
			text.WriteString(s)
		case 'L':
			switch v := arg.(type) {
			case CodeBlock:
				if v.err != nil {
					return CodeBlock{err: v.err}
				}
				flush()
				c.segments = append(c.segments, segment{kind: segCode, code: v})
			case string:
				text.WriteString(v)
			case int, int32, int64, float32, float64, bool:
				fmt.Fprint(&text, v)
			case fmt.Stringer:
				text.WriteString(v.String())
			default:
				return malformed("$L cannot render %T", arg)
			}
		default:
			return malformed("unknown placeholder $%c in %q", p, format)
		}
	}
	if next != len(args) {
		return malformed("%d unused argument(s) for %q", len(args)-next, format)
	}
	flush()
	return c
}

func malformed(format string, args ...any) CodeBlock {
	return CodeBlock{err: fmt.Errorf("%w: %s", ErrMalformedCode, fmt.Sprintf(format, args...))}
}

// Err returns the parse error carried by the block, if any.
func (c CodeBlock) Err() error { return c.err }

// IsEmpty reports whether the block renders to nothing.
func (c CodeBlock) IsEmpty() bool { return len(c.segments) == 0 && c.err == nil }

// Types returns every type referenced by the block, nested blocks included.
func (c CodeBlock) Types() []TypeName {
	var out []TypeName
	for _, s := range c.segments {
		switch s.kind {
		case segType:
			out = append(out, s.typ)
		case segCode:
			out = append(out, s.code.Types()...)
		}
	}
	return out
}

// CodeRenderer supplies the dialect-specific spelling of types and string
// literals.
type CodeRenderer interface {
	TypeRef(TypeName) string
	StringLiteral(string) string
}

// Render returns the block's text in the renderer's dialect.
func (c CodeBlock) Render(r CodeRenderer) string {
	var b strings.Builder
	for _, s := range c.segments {
		switch s.kind {
		case segText:
			b.WriteString(s.text)
		case segType:
			b.WriteString(r.TypeRef(s.typ))
		case segString:
			b.WriteString(r.StringLiteral(s.text))
		case segCode:
			b.WriteString(s.code.Render(r))
		}
	}
	return b.String()
}

// Join concatenates blocks with sep between them.
func Join(sep string, blocks ...CodeBlock) CodeBlock {
	var c CodeBlock
	for i, b := range blocks {
		if b.err != nil {
			return CodeBlock{err: b.err}
		}
		if i > 0 && sep != "" {
			c.segments = append(c.segments, segment{kind: segText, text: sep})
		}
		c.segments = append(c.segments, b.segments...)
	}
	return c
}

// Append returns c followed by the fragment described by format.
func (c CodeBlock) Append(format string, args ...any) CodeBlock {
	return Join("", c, Code(format, args...))
}
