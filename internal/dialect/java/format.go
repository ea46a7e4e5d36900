package java

import (
	"strings"

	"github.com/toyz/artist/internal/dialect"
)

const (
	maxWidth          = 100
	continuationWidth = 4
)

// Format pretty-prints Java source the way google-java-format lays out
// generated classes: empty bodies collapse to {}, calls or declarations
// wider than 100 columns break after the opening parenthesis of the call
// that ends the statement, first trying all arguments on one continuation
// line and then one per line. Long javadoc lines are word-wrapped.
func (*Dialect) Format(src string) (string, error) {
	if err := dialect.CheckBalance(src); err != nil {
		return "", err
	}
	out := dialect.CollapseEmptyBlocks(src)
	out = wrapLongLines(out)
	return dialect.Normalize(out), nil
}

func wrapLongLines(src string) string {
	lines := strings.Split(src, "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if len(l) <= maxWidth {
			out = append(out, l)
			continue
		}
		if wrapped, ok := wrapDoc(l); ok {
			out = append(out, wrapped...)
			continue
		}
		if wrapped, ok := wrapCall(l); ok {
			out = append(out, wrapped...)
			continue
		}
		out = append(out, l)
	}
	return strings.Join(out, "\n")
}

// wrapDoc word-wraps a javadoc line. Continuations of a block tag such as
// @return are indented by four more columns.
func wrapDoc(line string) ([]string, bool) {
	body := strings.TrimLeft(line, " ")
	if !strings.HasPrefix(body, "* ") {
		return nil, false
	}
	indent := line[:len(line)-len(body)]
	words := strings.Fields(body[2:])
	if len(words) < 2 {
		return nil, false
	}

	cont := indent + "* "
	if strings.HasPrefix(words[0], "@") {
		cont += strings.Repeat(" ", continuationWidth)
	}
	var out []string
	cur := indent + "* " + words[0]
	for _, w := range words[1:] {
		if len(cur)+1+len(w) > maxWidth {
			out = append(out, cur)
			cur = cont + w
			continue
		}
		cur += " " + w
	}
	out = append(out, cur)
	return out, len(out) > 1
}

// wrapCall breaks line after the first top-level "(" whose matching ")" is
// followed only by a terminator, so a chain such as a().b(x); breaks inside
// b(...).
func wrapCall(line string) ([]string, bool) {
	body := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(body)]
	if strings.HasPrefix(body, "//") || strings.HasPrefix(body, "*") || strings.HasPrefix(body, "@") {
		return nil, false
	}

	open, closing := finalCall(body)
	if open < 0 {
		return nil, false
	}
	args := splitTopLevel(body[open+1 : closing])
	if len(args) == 0 {
		return nil, false
	}

	head := indent + body[:open+1]
	if len(head) > maxWidth {
		return nil, false
	}
	cont := indent + strings.Repeat(" ", continuationWidth)
	suffix := body[closing:]

	if single := cont + strings.Join(args, ", ") + suffix; len(single) <= maxWidth {
		return []string{head, single}, true
	}
	out := []string{head}
	for i, a := range args {
		if i < len(args)-1 {
			out = append(out, cont+a+",")
		} else {
			out = append(out, cont+a+suffix)
		}
	}
	return out, true
}

// scan walks s calling visit for every byte outside string and character
// literals. visit returns false to stop.
func scan(s string, from int, visit func(i int) bool) {
	for i := from; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\'' {
			for i++; i < len(s) && s[i] != c; i++ {
				if s[i] == '\\' {
					i++
				}
			}
			continue
		}
		if !visit(i) {
			return
		}
	}
}

// finalCall returns the parentheses of the top-level call that ends the
// statement, or -1 when there is none.
func finalCall(s string) (int, int) {
	open, closing, depth := -1, -1, 0
	scan(s, 0, func(i int) bool {
		switch s[i] {
		case '(':
			if depth == 0 {
				if c := matchingParen(s, i); c >= 0 && terminates(s[c+1:]) {
					open, closing = i, c
					return false
				}
			}
			depth++
		case ')':
			depth--
		}
		return true
	})
	return open, closing
}

func terminates(rest string) bool {
	switch strings.TrimSpace(rest) {
	case "", ";", "{", "{}":
		return true
	}
	return false
}

func matchingParen(s string, open int) int {
	depth, idx := 0, -1
	scan(s, open, func(i int) bool {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				idx = i
				return false
			}
		}
		return true
	})
	return idx
}

// splitTopLevel splits an argument list on commas that are not nested in
// parentheses, brackets, braces or generics.
func splitTopLevel(s string) []string {
	var (
		parts []string
		depth int
		start int
	)
	scan(s, 0, func(i int) bool {
		switch s[i] {
		case '(', '[', '{', '<':
			depth++
		case '>':
			if i > 0 && s[i-1] == '-' {
				break
			}
			depth--
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
		return true
	})
	if last := strings.TrimSpace(s[start:]); last != "" {
		parts = append(parts, last)
	}
	return parts
}
