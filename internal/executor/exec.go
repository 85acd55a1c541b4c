package executor

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/statespace-tech/toolfront/internal/dispatch"
	"github.com/statespace-tech/toolfront/internal/sandbox"
	"github.com/statespace-tech/toolfront/internal/toolerr"
)

// execEnv is the fixed, fully-cleared environment every Exec subprocess
// runs with. No variable from the calling process's own environment is
// ever inherited.
var execEnv = []string{
	"PATH=/usr/local/bin:/usr/bin:/bin",
	"HOME=/tmp",
	"LANG=C.UTF-8",
	"LC_ALL=C.UTF-8",
}

// executeExec runs tool.Command with tool.Args, confined to workDir.
// Every argument is rejected outright if it is an absolute path or
// contains "..": an exec tool only ever gets to touch files already
// reachable relative to workDir by name.
func (e *Executor) executeExec(ctx context.Context, tool dispatch.BuiltinTool, workDir string) (Output, error) {
	for _, arg := range tool.Args {
		if strings.HasPrefix(arg, "/") {
			return Output{}, toolerr.New(toolerr.Security, "absolute path argument not allowed")
		}
		if strings.Contains(arg, "..") {
			return Output{}, toolerr.New(toolerr.Security, "path traversal in argument not allowed")
		}
	}

	cmd := exec.CommandContext(ctx, tool.Command, tool.Args...)
	cmd.Dir = workDir
	cmd.Env = execEnv

	// Each stream is captured into a buffer generous enough that a
	// well-behaved tool never hits it; the combined-size check below is
	// the real enforcement point, matching how the limit is defined (on
	// the combined output, not per-stream).
	stdoutBuf := sandbox.NewBoundedBuffer(e.limits.MaxOutputBytes * 2)
	stderrBuf := sandbox.NewBoundedBuffer(e.limits.MaxOutputBytes * 2)
	cmd.Stdout = stdoutBuf
	cmd.Stderr = stderrBuf

	runErr := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return Output{}, toolerr.New(toolerr.Timeout, "tool execution timeout")
	}

	combined := combineOutput(stdoutBuf.String(), stderrBuf.String())
	if len(combined) > e.limits.MaxOutputBytes {
		return Output{}, toolerr.OutputLimitExceeded(len(combined), e.limits.MaxOutputBytes)
	}

	if runErr != nil {
		if _, ok := runErr.(*exec.ExitError); !ok {
			return Output{}, toolerr.Wrap(toolerr.Internal, runErr, "start tool process")
		}
	}

	return Output{Kind: OutputText, Text: combined}, nil
}

func combineOutput(stdout, stderr string) string {
	var b bytes.Buffer
	b.WriteString(stdout)
	if stdout != "" && stderr != "" {
		b.WriteString("\n")
	}
	b.WriteString(stderr)
	return b.String()
}
