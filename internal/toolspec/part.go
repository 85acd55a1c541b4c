// Package toolspec implements the tool spec data model and the matcher
// that decides whether a (possibly already-expanded) command is one a
// document's frontmatter actually allows.
package toolspec

import (
	"regexp"

	"github.com/statespace-tech/toolfront/internal/toolerr"
)

// PartKind distinguishes the two closed shapes a spec position can take.
type PartKind int

const (
	PartLiteral PartKind = iota
	PartPlaceholder
)

// Part is one position in a ToolSpec. Go has no sum types, so Part is a
// tagged struct; callers switch on Kind and treat the other fields as
// valid only for the matching kind.
type Part struct {
	Kind    PartKind
	Literal string         // valid when Kind == PartLiteral
	Regex   *regexp.Regexp // non-nil when the placeholder is regex-constrained
	Pattern string         // regex source text, kept for equality/debugging
}

// parsePart turns one raw frontmatter element (a string or a one-key map)
// into a Part. raw is whatever a YAML/TOML decoder produced for a single
// sequence element: a string, or a map[string]interface{}.
func parsePart(raw any) (Part, error) {
	switch v := raw.(type) {
	case string:
		return Part{Kind: PartLiteral, Literal: v}, nil
	case map[string]interface{}:
		if len(v) == 0 {
			return Part{Kind: PartPlaceholder}, nil
		}
		rawPattern, ok := v["regex"]
		if !ok || len(v) != 1 {
			return Part{}, toolerr.New(toolerr.FrontmatterParse, "placeholder object must be empty or have a single 'regex' key")
		}
		pattern, ok := rawPattern.(string)
		if !ok {
			return Part{}, toolerr.New(toolerr.FrontmatterParse, "placeholder 'regex' value must be a string")
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return Part{}, toolerr.Wrap(toolerr.FrontmatterParse, err, "invalid regex %q", pattern)
		}
		return Part{Kind: PartPlaceholder, Regex: re, Pattern: pattern}, nil
	default:
		return Part{}, toolerr.New(toolerr.FrontmatterParse, "spec part must be a string or object, got %T", raw)
	}
}
