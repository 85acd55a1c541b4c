// Package pipeline wires the content resolver, frontmatter parser,
// substitution, spec matcher, dispatcher, and executor into the single
// request/response operation an external transport layer (not part of
// this module) would expose over HTTP. It is grounded on the source
// runtime's execute_action, minus the HTTP routing around it.
package pipeline

import (
	"context"
	"path/filepath"

	"github.com/statespace-tech/toolfront/internal/content"
	"github.com/statespace-tech/toolfront/internal/dispatch"
	"github.com/statespace-tech/toolfront/internal/executor"
	"github.com/statespace-tech/toolfront/internal/frontmatter"
	"github.com/statespace-tech/toolfront/internal/subst"
	"github.com/statespace-tech/toolfront/internal/toolerr"
	"github.com/statespace-tech/toolfront/internal/toolspec"
)

// Request is the client-supplied action request: the literal command and
// the two substitution maps applied to it before matching.
type Request struct {
	Command []string          `json:"command"`
	Args    map[string]string `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

// Validate rejects an empty command before any resolution work begins,
// saving a wasted resolve/parse cycle for an obviously bad request.
func (r Request) Validate() error {
	if len(r.Command) == 0 {
		return toolerr.New(toolerr.InvalidCommand, "command cannot be empty")
	}
	return nil
}

// Response mirrors a subprocess's result shape: stdout/stderr/returncode,
// so that a caller already speaking that convention (a shell, a subprocess
// wrapper) can treat a tool execution uniformly whether it ran locally or
// through this pipeline.
type Response struct {
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
	ReturnCode int    `json:"returncode"`
}

// Success builds a Response for a completed tool invocation.
func Success(output string) Response {
	return Response{Stdout: output, ReturnCode: 0}
}

// Failure builds a Response carrying a user-safe error message.
func Failure(message string) Response {
	return Response{Stderr: message, ReturnCode: 1}
}

// Pipeline holds the shared, immutable collaborators a request needs:
// a content resolver and an executor. Both are themselves safe for
// concurrent reuse, so a single Pipeline may serve many requests at once.
type Pipeline struct {
	resolver content.Resolver
	executor *executor.Executor
}

// New builds a Pipeline from a resolver and executor.
func New(resolver content.Resolver, exec *executor.Executor) *Pipeline {
	return &Pipeline{resolver: resolver, executor: exec}
}

// HandleAction runs the full request/response pipeline for one request
// against requestPath: validate, resolve, parse frontmatter, substitute,
// match, dispatch, execute. Every failure along the way maps to a
// *toolerr.Error so the caller can derive both an HTTP status and a safe
// message from one value.
func (p *Pipeline) HandleAction(ctx context.Context, requestPath string, req Request) (Response, *toolerr.Error) {
	if err := req.Validate(); err != nil {
		return Response{}, err.(*toolerr.Error)
	}

	filePath, err := p.resolver.ResolvePath(requestPath)
	if err != nil {
		return Response{}, asToolErr(err)
	}

	body, err := p.resolver.ResolveString(requestPath)
	if err != nil {
		return Response{}, asToolErr(err)
	}

	fm, err := frontmatter.Parse(body)
	if err != nil {
		return Response{}, asToolErr(err)
	}

	if serr := subst.DetectAmbiguousKeys(req.Env); serr != nil {
		return Response{}, asToolErr(serr)
	}
	expanded := subst.Expand(req.Command, req.Args, req.Env)

	if !toolspec.MatchAny(fm.Specs, expanded) {
		return Response{}, toolerr.CommandNotAllowed(expanded)
	}

	tool, derr := dispatch.Classify(expanded)
	if derr != nil {
		return Response{}, asToolErr(derr)
	}

	workDir := filepath.Dir(filePath)
	sensitive := executor.SensitiveRequestValues(req.Args, req.Env)
	out, eerr := p.executor.Execute(ctx, tool, workDir, sensitive...)
	if eerr != nil {
		return Response{}, asToolErr(eerr)
	}

	return Success(out.ToText()), nil
}

func asToolErr(err error) *toolerr.Error {
	if te, ok := err.(*toolerr.Error); ok {
		return te
	}
	return toolerr.Wrap(toolerr.Internal, err, "unexpected error")
}
