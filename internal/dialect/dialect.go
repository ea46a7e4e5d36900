// Package dialect holds what the Java and Kotlin renderers share: the
// Dialect contract, import management, a type walker and formatting
// helpers.
package dialect

import "github.com/toyz/artist/internal/poet"

// Dialect renders poet files as source text of one language.
type Dialect interface {
	Name() string
	Language() poet.Language
	// FileExtension includes the leading dot.
	FileExtension() string
	// Render emits the file as built, without pretty-printing.
	Render(f *poet.File) (string, error)
	// Format pretty-prints rendered source. It fails on source it cannot
	// make sense of, e.g. unbalanced delimiters.
	Format(src string) (string, error)
}

// FileName returns the on-disk name of f in dialect d.
func FileName(d Dialect, f *poet.File) string {
	return f.Type.Name + d.FileExtension()
}

// HeaderText is the file comment placed on every generated file.
const HeaderText = "Generated by artist. DO NOT EDIT."

// GeneratedHeader is HeaderText as it appears on the first line of a
// rendered file.
const GeneratedHeader = "// " + HeaderText
