// Package frontmatter extracts and decodes the YAML or TOML block at the
// top of a tool-enabled markdown document and turns its "tools" sequences
// into toolspec.Spec values.
package frontmatter

import (
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/statespace-tech/toolfront/internal/toolerr"
	"github.com/statespace-tech/toolfront/internal/toolspec"
)

// Frontmatter is the parsed, validated result: the allowlist of command
// specs a document's body may invoke.
type Frontmatter struct {
	Specs []toolspec.Spec
}

// Names returns, for each spec, the Literal text of its first part if it
// has one. Specs whose first part is a placeholder contribute an empty
// string. This mirrors the source runtime's tool_names diagnostic helper;
// it is not used by matching itself.
func (f Frontmatter) Names() []string {
	names := make([]string, len(f.Specs))
	for i, s := range f.Specs {
		if len(s.Parts) > 0 && s.Parts[0].Kind == toolspec.PartLiteral {
			names[i] = s.Parts[0].Literal
		}
	}
	return names
}

type rawFrontmatter struct {
	Tools []interface{} `yaml:"tools" toml:"tools"`
}

// Parse extracts the leading frontmatter block from content and decodes
// it into a Frontmatter. A document with no recognizable "---"/"+++"
// block returns a NoFrontmatter error; a block that fails to decode, or
// whose "tools" entries don't parse into valid specs, returns a
// FrontmatterParse error.
func Parse(content string) (Frontmatter, error) {
	body, isYAML, ok := extractBlock(content)
	if !ok {
		return Frontmatter{}, toolerr.New(toolerr.NoFrontmatter, "no frontmatter found in file")
	}

	var raw rawFrontmatter
	if isYAML {
		if err := yaml.Unmarshal([]byte(body), &raw); err != nil {
			return Frontmatter{}, toolerr.Wrap(toolerr.FrontmatterParse, err, "invalid YAML frontmatter")
		}
	} else {
		if err := toml.Unmarshal([]byte(body), &raw); err != nil {
			return Frontmatter{}, toolerr.Wrap(toolerr.FrontmatterParse, err, "invalid TOML frontmatter")
		}
	}

	specs := make([]toolspec.Spec, 0, len(raw.Tools))
	for _, entry := range raw.Tools {
		seq, ok := entry.([]interface{})
		if !ok {
			return Frontmatter{}, toolerr.New(toolerr.FrontmatterParse, "each 'tools' entry must be a sequence")
		}
		spec, err := toolspec.ParseRawSpec(seq)
		if err != nil {
			return Frontmatter{}, err
		}
		specs = append(specs, spec)
	}
	return Frontmatter{Specs: specs}, nil
}

// extractBlock finds the leading "---"/"+++" delimited block and returns
// its inner text, whether it was YAML-delimited (true) or TOML-delimited
// (false), and whether a block was found at all. The opening delimiter
// must be the first non-whitespace content in the document; the closing
// delimiter is the first line consisting of the same three characters
// found afterward.
func extractBlock(content string) (inner string, isYAML bool, found bool) {
	trimmed := strings.TrimLeft(content, " \t\r\n")
	for _, d := range []struct {
		delim string
		yaml  bool
	}{
		{"---", true},
		{"+++", false},
	} {
		if !strings.HasPrefix(trimmed, d.delim) {
			continue
		}
		rest := trimmed[len(d.delim):]
		closeIdx := -1
		for off := 0; ; {
			i := strings.Index(rest[off:], "\n"+d.delim)
			if i == -1 {
				break
			}
			end := off + i + 1 + len(d.delim)
			if end == len(rest) || rest[end] == '\n' || rest[end] == '\r' {
				closeIdx = off + i
				break
			}
			off = end
		}
		if closeIdx == -1 {
			continue
		}
		return strings.TrimSpace(rest[:closeIdx]), d.yaml, true
	}
	return "", false, false
}
