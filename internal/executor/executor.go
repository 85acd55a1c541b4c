// Package executor runs a classified BuiltinTool inside a confined
// working directory, enforcing the output, listing, and wall-clock
// limits every variant shares: a cleared subprocess environment, piped
// stdout/stderr with NDJSON audit logging, and layered SSRF defenses for
// the curl variant.
package executor

import (
	"context"

	"github.com/statespace-tech/toolfront/internal/dispatch"
	"github.com/statespace-tech/toolfront/internal/sandbox"
	"github.com/statespace-tech/toolfront/internal/toolerr"
)

// Executor runs tools with a fixed working directory and a fixed set of
// limits. It holds only immutable configuration, so one instance may be
// shared across concurrent requests as long as each call supplies its own
// working directory.
type Executor struct {
	limits  Limits
	auditor *Auditor // nil disables audit logging
}

// New builds an Executor with the given limits. A nil auditor disables
// audit logging entirely.
func New(limits Limits, auditor *Auditor) *Executor {
	return &Executor{limits: limits, auditor: auditor}
}

// Execute runs tool with workDir as its confinement root, wrapping the
// entire dispatch (not just the underlying syscall) in one wall-clock
// timeout: a glob or curl variant that is slow to enumerate or to
// receive a response is bounded exactly like a slow subprocess.
// sensitive carries request-scoped literal values (see
// SensitiveRequestValues) the audit log should mask on top of its
// globally configured patterns; callers with nothing to flag omit it.
func (e *Executor) Execute(ctx context.Context, tool dispatch.BuiltinTool, workDir string, sensitive ...string) (Output, error) {
	ctx, cancel := sandbox.WithWallTimeout(ctx, e.limits.Timeout)
	defer cancel()

	start := auditClock()
	out, err := e.dispatch(ctx, tool, workDir)
	if e.auditor != nil {
		e.auditor.Record(tool, workDir, start, out, err, sensitive...)
	}
	if ctx.Err() == context.DeadlineExceeded {
		return Output{}, toolerr.New(toolerr.Timeout, "tool execution timeout")
	}
	return out, err
}

func (e *Executor) dispatch(ctx context.Context, tool dispatch.BuiltinTool, workDir string) (Output, error) {
	switch tool.Kind {
	case dispatch.KindExec:
		return e.executeExec(ctx, tool, workDir)
	case dispatch.KindGlob:
		return e.executeGlob(ctx, tool, workDir)
	case dispatch.KindCurl:
		return e.executeCurl(ctx, tool)
	default:
		return Output{}, toolerr.New(toolerr.Internal, "unreachable: unknown tool kind")
	}
}
