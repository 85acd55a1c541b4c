package toolspec

// Matches reports whether command satisfies this spec.
//
// A shorter command than Parts never matches. A longer command matches
// only when OptionsDisabled is false (extra trailing words are tolerated
// by default, e.g. ["ls", "-la", "docs/"] against a two-part spec for
// "ls {path}" is allowed unless the spec opted out with a trailing ";").
// Each position must either equal a Literal part exactly or satisfy a
// Placeholder part: an unconstrained placeholder (nil Regex) accepts any
// word, a regex-constrained one requires an unanchored is_match-style
// match anywhere in the word.
func (s Spec) Matches(command []string) bool {
	if len(command) < len(s.Parts) {
		return false
	}
	if len(command) > len(s.Parts) && s.OptionsDisabled {
		return false
	}
	for i, part := range s.Parts {
		word := command[i]
		switch part.Kind {
		case PartLiteral:
			if word != part.Literal {
				return false
			}
		case PartPlaceholder:
			if part.Regex != nil && !part.Regex.MatchString(word) {
				return false
			}
		}
	}
	return true
}

// MatchAny reports whether command is allowed by any of specs. An empty
// command is never allowed, regardless of what the specs declare.
func MatchAny(specs []Spec, command []string) bool {
	if len(command) == 0 {
		return false
	}
	for _, s := range specs {
		if s.Matches(command) {
			return true
		}
	}
	return false
}
