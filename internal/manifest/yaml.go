package manifest

import (
	"bytes"
	stderrors "errors"
	"io"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/toyz/artist/internal/errors"
)

var yamlLine = regexp.MustCompile(`line (\d+)`)

// ParseYAML parses a YAML manifest. Unknown keys are rejected.
func ParseYAML(path string, data []byte) (*Manifest, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, syntaxError(path, err, yamlErrorLocation(path, err))
	}

	// A second pass over the node tree recovers stencil positions
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, syntaxError(path, err, yamlErrorLocation(path, err))
	}
	positions := stencilNodes(&root)

	return build(path, doc.GlobalTraits, doc.Stencils, func(i int) errors.SourceLocation {
		if i >= len(positions) {
			return errors.SourceLocation{}
		}
		return errors.SourceLocation{File: path, Line: positions[i].Line, Column: positions[i].Column}
	})
}

// stencilNodes returns the items of the top-level stencils sequence
func stencilNodes(root *yaml.Node) []*yaml.Node {
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil
	}
	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == "stencils" && mapping.Content[i+1].Kind == yaml.SequenceNode {
			return mapping.Content[i+1].Content
		}
	}
	return nil
}

// yamlErrorLocation extracts the first line number yaml.v3 mentions
func yamlErrorLocation(path string, err error) errors.SourceLocation {
	loc := errors.SourceLocation{File: path}
	if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
		loc.Line, _ = strconv.Atoi(m[1])
	}
	return loc
}
