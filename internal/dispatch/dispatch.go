// Package dispatch classifies an already-validated command into exactly
// one of three builtin tool shapes: Exec, Glob, or Curl.
package dispatch

import (
	"strings"

	"github.com/statespace-tech/toolfront/internal/toolerr"
)

// Kind is the closed set of builtin tool shapes.
type Kind int

const (
	KindExec Kind = iota
	KindGlob
	KindCurl
)

// BuiltinTool is the result of classifying a command. Callers switch on
// Kind and read only the fields that apply to it: Command/Args for Exec,
// Pattern for Glob, URL/Method for Curl.
type BuiltinTool struct {
	Kind    Kind
	Command string
	Args    []string
	Pattern string
	URL     string
	Method  HTTPMethod
}

// RequiresEgress reports whether executing this tool makes an outbound
// network connection. Only Curl does; a caller that wants to meter or log
// network-capable invocations separately from local ones can use this
// instead of re-deriving it from Kind.
func (t BuiltinTool) RequiresEgress() bool { return t.Kind == KindCurl }

// Classify turns an expanded command into a BuiltinTool. "glob" and
// "curl" are special-cased first words; every other command becomes an
// Exec tool with command[0] as the executable and the remainder as
// arguments.
func Classify(command []string) (BuiltinTool, error) {
	if len(command) == 0 {
		return BuiltinTool{}, toolerr.New(toolerr.InvalidCommand, "empty command")
	}
	switch command[0] {
	case "glob":
		if len(command) != 2 {
			return BuiltinTool{}, toolerr.New(toolerr.InvalidCommand, "glob requires exactly one pattern argument")
		}
		return BuiltinTool{Kind: KindGlob, Pattern: command[1]}, nil
	case "curl":
		return parseCurl(command[1:])
	default:
		return BuiltinTool{Kind: KindExec, Command: command[0], Args: command[1:]}, nil
	}
}

// parseCurl recognizes only "-X"/"--request <method>" among flags; the
// first non-flag argument becomes the URL. Any other leading-dash
// argument, a second URL, or a dangling "-X" with no value is an
// InvalidCommand.
func parseCurl(args []string) (BuiltinTool, error) {
	tool := BuiltinTool{Kind: KindCurl}
	expectingMethod := false
	for _, a := range args {
		switch {
		case expectingMethod:
			method, err := ParseHTTPMethod(a)
			if err != nil {
				return BuiltinTool{}, err
			}
			tool.Method = method
			expectingMethod = false
		case a == "-X" || a == "--request":
			expectingMethod = true
		case strings.HasPrefix(a, "-"):
			return BuiltinTool{}, toolerr.New(toolerr.InvalidCommand, "unrecognized curl flag %q", a)
		case tool.URL == "":
			tool.URL = a
		default:
			return BuiltinTool{}, toolerr.New(toolerr.InvalidCommand, "curl accepts only one URL, got a second: %q", a)
		}
	}
	if expectingMethod {
		return BuiltinTool{}, toolerr.New(toolerr.InvalidCommand, "curl -X/--request requires a method value")
	}
	if tool.URL == "" {
		return BuiltinTool{}, toolerr.New(toolerr.InvalidCommand, "curl requires a URL")
	}
	if tool.Method == "" {
		tool.Method = DefaultMethod
	}
	return tool, nil
}
