package toolspec

import "github.com/statespace-tech/toolfront/internal/toolerr"

// optionsSentinel is the trailing literal that, when present as the last
// raw element of a spec, toggles OptionsDisabled and is itself dropped
// before the remaining elements are parsed into Parts.
const optionsSentinel = ";"

// Spec is one allowed command template declared in a document's
// frontmatter. A command matches Spec if it matches Parts positionally
// (see Matches), subject to OptionsDisabled controlling whether trailing
// extra words are tolerated.
type Spec struct {
	Parts           []Part
	OptionsDisabled bool
}

// ParseRawSpec parses one frontmatter "tools" entry (a sequence of strings
// and/or placeholder objects) into a Spec. A trailing bare ";" string
// disables trailing-options tolerance for this spec and is not itself a
// Part.
func ParseRawSpec(raw []any) (Spec, error) {
	optionsDisabled := false
	if n := len(raw); n > 0 {
		if s, ok := raw[n-1].(string); ok && s == optionsSentinel {
			optionsDisabled = true
			raw = raw[:n-1]
		}
	}
	if len(raw) == 0 {
		return Spec{}, toolerr.New(toolerr.FrontmatterParse, "empty tool spec")
	}
	parts := make([]Part, 0, len(raw))
	for _, r := range raw {
		p, err := parsePart(r)
		if err != nil {
			return Spec{}, err
		}
		parts = append(parts, p)
	}
	return Spec{Parts: parts, OptionsDisabled: optionsDisabled}, nil
}
