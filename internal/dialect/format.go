package dialect

import (
	"fmt"
	"strings"
)

// CheckBalance verifies that (), [] and {} nest properly outside of string
// literals, character literals and comments.
func CheckBalance(src string) error {
	type open struct {
		ch   byte
		line int
	}
	var (
		stack []open
		line  = 1
	)
	closers := map[byte]byte{')': '(', ']': '[', '}': '{'}

	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '\n':
			line++
		case strings.HasPrefix(src[i:], "//"):
			for i < len(src) && src[i] != '\n' {
				i++
			}
			line++
		case strings.HasPrefix(src[i:], "/*"):
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return fmt.Errorf("line %d: unterminated comment", line)
			}
			line += strings.Count(src[i:i+2+end], "\n")
			i += end + 3
		case strings.HasPrefix(src[i:], `"""`):
			end := strings.Index(src[i+3:], `"""`)
			if end < 0 {
				return fmt.Errorf("line %d: unterminated raw string", line)
			}
			line += strings.Count(src[i:i+3+end], "\n")
			i += end + 5
		case c == '"' || c == '\'':
			j := i + 1
			for ; j < len(src) && src[j] != c; j++ {
				if src[j] == '\\' {
					j++
				} else if src[j] == '\n' {
					break
				}
			}
			if j >= len(src) || src[j] != c {
				return fmt.Errorf("line %d: unterminated literal", line)
			}
			i = j
		case c == '(' || c == '[' || c == '{':
			stack = append(stack, open{ch: c, line: line})
		case c == ')' || c == ']' || c == '}':
			if len(stack) == 0 || stack[len(stack)-1].ch != closers[c] {
				return fmt.Errorf("line %d: unexpected '%c'", line, c)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return fmt.Errorf("line %d: unclosed '%c'", top.line, top.ch)
	}
	return nil
}

// Normalize strips trailing whitespace, collapses runs of blank lines and
// guarantees exactly one trailing newline.
func Normalize(src string) string {
	lines := strings.Split(src, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, l := range lines {
		l = strings.TrimRight(l, " \t\r")
		if l == "" {
			if blank || len(out) == 0 {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, l)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n") + "\n"
}

// CollapseEmptyBlocks joins a line ending in "{" with an immediately
// following line holding only "}", giving "{}".
func CollapseEmptyBlocks(src string) string {
	lines := strings.Split(src, "\n")
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		l := lines[i]
		if strings.HasSuffix(l, "{") && i+1 < len(lines) && strings.TrimSpace(lines[i+1]) == "}" &&
			!strings.HasPrefix(strings.TrimSpace(l), "//") {
			out = append(out, l+"}")
			i++
			continue
		}
		out = append(out, l)
	}
	return strings.Join(out, "\n")
}

// LineWriter accumulates indented lines.
type LineWriter struct {
	b      strings.Builder
	unit   string
	indent int
}

// NewLineWriter returns a writer indenting by unit per level.
func NewLineWriter(unit string) *LineWriter {
	return &LineWriter{unit: unit}
}

// Line writes one line at the current indent. An empty line carries no
// indentation.
func (w *LineWriter) Line(format string, args ...any) {
	s := format
	if len(args) > 0 {
		s = fmt.Sprintf(format, args...)
	}
	if s != "" {
		w.b.WriteString(strings.Repeat(w.unit, w.indent))
		w.b.WriteString(s)
	}
	w.b.WriteByte('\n')
}

func (w *LineWriter) Blank() { w.b.WriteByte('\n') }
func (w *LineWriter) In()    { w.indent++ }
func (w *LineWriter) Out()   { w.indent-- }

func (w *LineWriter) String() string { return w.b.String() }
