// Package toolerr defines the closed error taxonomy used across the tool
// runtime. Every boundary function in this module returns one of these
// variants rather than an ad-hoc wrapped error, so that a caller one layer
// up (the pipeline, a future HTTP transport) can map any failure to a
// status code and a message safe to hand back to a client in one place.
package toolerr

import (
	"fmt"
	"net/http"
)

// Kind identifies one of the eleven closed error variants. New variants are
// not expected; callers may safely exhaustively switch on Kind.
type Kind string

const (
	InvalidCommand   Kind = "invalid_command"
	CommandNotFound  Kind = "command_not_found"
	NoFrontmatter    Kind = "no_frontmatter"
	FrontmatterParse Kind = "frontmatter_parse"
	Timeout          Kind = "timeout"
	OutputTooLarge   Kind = "output_too_large"
	PathTraversal    Kind = "path_traversal"
	NotFound         Kind = "not_found"
	Security         Kind = "security"
	Network          Kind = "network"
	Internal         Kind = "internal"
)

// Error is the concrete type returned by every public function in this
// module that can fail for a reason a caller needs to distinguish.
type Error struct {
	Kind    Kind
	msg     string
	wrapped error
}

func (e *Error) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.msg, e.wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

func (e *Error) Unwrap() error { return e.wrapped }

// New builds an Error of the given kind with a formatted internal message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error of the given kind that carries an underlying cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...), wrapped: cause}
}

// HTTPStatus maps a Kind to the status code a transport layer should use.
// This table is the one place that mapping lives; a future HTTP front end
// should call this rather than re-deriving it.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case InvalidCommand, CommandNotFound, NoFrontmatter, FrontmatterParse:
		return http.StatusBadRequest
	case PathTraversal, Security:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Timeout:
		return http.StatusRequestTimeout
	case OutputTooLarge:
		return http.StatusRequestEntityTooLarge
	case Network:
		return http.StatusBadGateway
	case Internal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage renders a message safe to return to a client. Internal never
// leaks its underlying cause; every other variant is safe to surface
// verbatim since its message is built only from the caller's own request.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case InvalidCommand:
		return "Invalid command: " + e.msg
	case CommandNotFound:
		return fmt.Sprintf("Command '%s' not allowed by frontmatter", e.msg)
	case NoFrontmatter:
		return "No frontmatter found. Tools must be declared in YAML/TOML frontmatter."
	case FrontmatterParse:
		return "Frontmatter parse error: " + e.msg
	case Timeout:
		return "Tool execution timeout"
	case OutputTooLarge:
		return e.msg
	case PathTraversal:
		return fmt.Sprintf("Access denied: cannot access '%s'", e.msg)
	case NotFound:
		return "File not found: " + e.msg
	case Security:
		return "Security violation: " + e.msg
	case Network:
		return "Network error: " + e.msg
	case Internal:
		return "Internal server error"
	default:
		return "Internal server error"
	}
}

// NotFoundPath builds a NotFound error carrying the original request path.
func NotFoundPath(path string) *Error { return New(NotFound, "%s", path) }

// PathTraversalAttempt builds a PathTraversal error naming the offending
// request path and the boundary it would have escaped. The attempted value
// is the caller's own input, never a resolved absolute path, so surfacing
// it in UserMessage does not leak server filesystem layout.
func PathTraversalAttempt(attempted, boundary string) *Error {
	return &Error{Kind: PathTraversal, msg: attempted, wrapped: fmt.Errorf("boundary %s", boundary)}
}

// CommandNotAllowed builds a CommandNotFound error naming the rejected
// command as a single space-joined string, matching the source runtime's
// message shape.
func CommandNotAllowed(command []string) *Error {
	joined := ""
	for i, c := range command {
		if i > 0 {
			joined += " "
		}
		joined += c
	}
	return New(CommandNotFound, "%s", joined)
}

// OutputLimitExceeded builds an OutputTooLarge error with the exact byte
// counts, matching the source runtime's "{size} bytes (limit: {limit})"
// phrasing.
func OutputLimitExceeded(size, limit int) *Error {
	return &Error{Kind: OutputTooLarge, msg: fmt.Sprintf("Output too large: %d bytes (limit: %d bytes)", size, limit)}
}
