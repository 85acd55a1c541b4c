// Package subst implements the two substitution passes applied to a raw
// command before it is matched against a document's frontmatter: argument
// placeholder expansion, then environment variable expansion. Both passes
// are literal substring replacement: no shell parsing, no escaping. Each
// pass replaces each key's token once per word, one key after another in
// map iteration order, so within a pass a value that contains another
// key's token is replaced or left depending on that order. The env pass
// runs over the output of the args pass.
package subst

import (
	"strings"

	"github.com/statespace-tech/toolfront/internal/toolerr"
)

// ExpandArgs replaces every occurrence of "{key}" in each word of command
// with its corresponding value from args. Keys not present in args are
// left untouched.
func ExpandArgs(command []string, args map[string]string) []string {
	return expand(command, args, func(key string) string { return "{" + key + "}" })
}

// ExpandEnv replaces every occurrence of "$key" in each word of command
// with its corresponding value from env. Keys not present in env are left
// untouched.
func ExpandEnv(command []string, env map[string]string) []string {
	return expand(command, env, func(key string) string { return "$" + key })
}

// Expand runs ExpandArgs followed by ExpandEnv, the fixed order the
// execution pipeline always applies. Each pass runs exactly once over the
// whole word, so an env value that itself contains "{name}" is never
// re-expanded; an arg value containing "$NAME" is still visible to the
// env pass, since that pass runs second.
func Expand(command []string, args, env map[string]string) []string {
	return ExpandEnv(ExpandArgs(command, args), env)
}

// DetectAmbiguousKeys rejects env maps in which one key is a proper prefix
// of another ("$NAME" vs "$NAMESPACE"), which makes the replacement order
// observable. Such inputs are a client error rather than something to
// resolve by picking an order. Brace-delimited "{key}" tokens cannot
// overlap this way, so args are not checked. A value that contains another
// key's token (in either map) is not detected.
func DetectAmbiguousKeys(env map[string]string) error {
	for a := range env {
		for b := range env {
			if a != b && strings.HasPrefix(b, a) {
				return toolerr.New(toolerr.InvalidCommand, "ambiguous env keys: %q is a prefix of %q", a, b)
			}
		}
	}
	return nil
}

func expand(command []string, values map[string]string, token func(string) string) []string {
	if len(values) == 0 {
		return append([]string(nil), command...)
	}
	out := make([]string, len(command))
	for i, word := range command {
		for key, val := range values {
			word = strings.ReplaceAll(word, token(key), val)
		}
		out[i] = word
	}
	return out
}
