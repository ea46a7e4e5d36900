package manifest

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/toyz/artist/internal/errors"
)

// ParseTOML parses a TOML manifest. Unknown keys are rejected.
func ParseTOML(path string, data []byte) (*Manifest, error) {
	var doc document
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		loc := errors.SourceLocation{File: path}
		var perr toml.ParseError
		if stderrors.As(err, &perr) {
			loc.Line = perr.Position.Line
		}
		return nil, syntaxError(path, err, loc)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, syntaxError(path,
			fmt.Errorf("unknown keys: %s", strings.Join(keys, ", ")),
			errors.SourceLocation{File: path})
	}

	return build(path, doc.GlobalTraits, doc.Stencils, noLocation)
}
