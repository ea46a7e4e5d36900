package manifest

import (
	stderrors "errors"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/artist/internal/errors"
)

// dslFile is the root of a .stencil manifest
type dslFile struct {
	Entries []*dslEntry `parser:"@@*"`
}

type dslEntry struct {
	Pos     lexer.Position
	Global  *dslGlobal  `parser:"  'global' @@"`
	Stencil *dslStencil `parser:"| 'stencil' @@"`
}

type dslGlobal struct {
	Traits []string `parser:"@Ident (',' @Ident)*"`
}

type dslStencil struct {
	Type   string   `parser:"@Ident"`
	Arity  *int     `parser:"('(' @Int ')')?"`
	Style  string   `parser:"('style' @String)?"`
	Traits []string `parser:"('traits' @Ident (',' @Ident)*)?"`
	Name   string   `parser:"('as' @Ident)?"`
}

var dslParser = participle.MustBuild[dslFile](
	participle.Lexer(lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "String", Pattern: `"(\\"|[^"])*"`},
		{Name: "Int", Pattern: `[0-9]+`},
		// Qualified class names and trait ids such as rx.text-input
		{Name: "Ident", Pattern: `[a-zA-Z_$][a-zA-Z0-9_$]*([.\-][a-zA-Z0-9_$]+)*`},
		{Name: "Punct", Pattern: `[(),]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})),
	participle.Elide("Comment", "Whitespace"),
	participle.Unquote("String"),
	participle.UseLookahead(2),
)

// ParseDSL parses a .stencil manifest
func ParseDSL(path string, data []byte) (*Manifest, error) {
	file, err := dslParser.ParseBytes(path, data)
	if err != nil {
		loc := errors.SourceLocation{File: path}
		var perr participle.Error
		if stderrors.As(err, &perr) {
			pos := perr.Position()
			loc.Line, loc.Column = pos.Line, pos.Column
		}
		return nil, syntaxError(path, err, loc)
	}

	var (
		globals   []string
		entries   []entry
		positions []lexer.Position
	)
	for _, e := range file.Entries {
		switch {
		case e.Global != nil:
			globals = append(globals, e.Global.Traits...)
		case e.Stencil != nil:
			s := e.Stencil
			entries = append(entries, entry{
				Type:         s.Type,
				Constructors: s.Arity,
				Style:        s.Style,
				Traits:       s.Traits,
				Name:         s.Name,
			})
			positions = append(positions, e.Pos)
		}
	}

	return build(path, globals, entries, func(i int) errors.SourceLocation {
		return errors.SourceLocation{File: path, Line: positions[i].Line, Column: positions[i].Column}
	})
}
