package executor

import (
	"os"
	"regexp"
	"strings"
)

// redactStrings applies redactString to each element, returning a fresh
// slice. extra carries request-scoped sensitive literals (see
// SensitiveRequestValues) in addition to the globally configured ones.
func redactStrings(values []string, extra ...string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = redactString(v, extra...)
	}
	return out
}

// redactString masks occurrences of configured sensitive patterns in s
// before it is written to the audit log. Patterns are sourced from
// TOOLFRONT_REDACT, a comma/semicolon-separated list of literals or
// regexes, plus any request-scoped literal values passed in extra,
// e.g. an {name}/$name substitution value whose key looked like a
// secret (see SensitiveRequestValues).
func redactString(s string, extra ...string) string {
	if s == "" {
		return s
	}
	for _, lit := range extra {
		if lit == "" {
			continue
		}
		s = strings.ReplaceAll(s, lit, "***REDACTED***")
	}
	pats := gatherRedactionPatterns()
	for _, rx := range pats.regexps {
		s = rx.ReplaceAllString(s, "***REDACTED***")
	}
	for _, lit := range pats.literals {
		if lit == "" {
			continue
		}
		s = strings.ReplaceAll(s, lit, "***REDACTED***")
	}
	return s
}

type redactionPatterns struct {
	regexps  []*regexp.Regexp
	literals []string
}

// gatherRedactionPatterns builds redaction patterns from TOOLFRONT_REDACT.
// Each comma/semicolon-separated field is tried as a regex first; fields
// that fail to compile are treated as literal substrings instead.
func gatherRedactionPatterns() redactionPatterns {
	var pats redactionPatterns
	cfg := os.Getenv("TOOLFRONT_REDACT")
	if cfg == "" {
		return pats
	}
	fields := strings.FieldsFunc(cfg, func(r rune) bool { return r == ',' || r == ';' })
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if rx, err := regexp.Compile(f); err == nil {
			pats.regexps = append(pats.regexps, rx)
		} else {
			pats.literals = append(pats.literals, f)
		}
	}
	return pats
}

// sensitiveKeySuffixes names the args/env key suffixes (checked
// case-insensitively) that flag a substitution value as a secret. A
// naming convention is used here because requests carry arbitrary
// caller-chosen key names, not a fixed set of provider keys.
var sensitiveKeySuffixes = []string{"_TOKEN", "_KEY", "_SECRET"}

// SensitiveRequestValues scans a request's args and env maps for keys
// matching sensitiveKeySuffixes and returns their values, so the caller
// can pass them to Executor.Execute for redaction in the audit log;
// a substituted command word may contain a secret value even though the
// command itself was never rejected.
func SensitiveRequestValues(args, env map[string]string) []string {
	var out []string
	for _, m := range []map[string]string{args, env} {
		for k, v := range m {
			if v == "" {
				continue
			}
			upper := strings.ToUpper(k)
			for _, suf := range sensitiveKeySuffixes {
				if strings.HasSuffix(upper, suf) {
					out = append(out, v)
					break
				}
			}
		}
	}
	return out
}
