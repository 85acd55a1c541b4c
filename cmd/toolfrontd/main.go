// Command toolfrontd drives the tool pipeline from a single JSON request
// on stdin, in a stdin-JSON/stdout-JSON convention. Once the request has
// been decoded, the response JSON is written to stdout whether the tool
// succeeded or failed, and the process exit code is the response's
// returncode (0 on success, 1 on failure). A bad flag exits with 2; an
// unusable content root or an unreadable or invalid request exits with 1
// after a message on stderr, and no response JSON is written. It is a
// demo/integration harness, not the HTTP transport layer; that remains an
// external collaborator.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/statespace-tech/toolfront/internal/content"
	"github.com/statespace-tech/toolfront/internal/executor"
	"github.com/statespace-tech/toolfront/internal/pipeline"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("toolfrontd", flag.ContinueOnError)
	fs.SetOutput(stderr)
	root := fs.String("root", ".", "content root directory")
	reqPath := fs.String("path", "", "request path, relative to root")
	auditDir := fs.String("audit-dir", "", "directory for NDJSON audit logs (disabled if empty)")
	timeoutSec := fs.Int("timeout", 30, "tool execution timeout in seconds")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	resolver, err := content.NewLocalResolver(*root)
	if err != nil {
		fmt.Fprintf(stderr, "toolfrontd: %v\n", err)
		return 1
	}

	limits := executor.DefaultLimits()
	limits.Timeout = time.Duration(*timeoutSec) * time.Second

	var auditor *executor.Auditor
	if *auditDir != "" {
		auditor = executor.NewAuditor(*auditDir)
	}

	exec := executor.New(limits, auditor)
	p := pipeline.New(resolver, exec)

	var req pipeline.Request
	body, err := io.ReadAll(stdin)
	if err != nil {
		fmt.Fprintf(stderr, "toolfrontd: read stdin: %v\n", err)
		return 1
	}
	if err := json.Unmarshal(body, &req); err != nil {
		fmt.Fprintf(stderr, "toolfrontd: invalid request JSON: %v\n", err)
		return 1
	}

	resp, toolErr := p.HandleAction(context.Background(), *reqPath, req)
	if toolErr != nil {
		resp = pipeline.Failure(toolErr.UserMessage())
	}

	enc := json.NewEncoder(stdout)
	if err := enc.Encode(resp); err != nil {
		fmt.Fprintf(stderr, "toolfrontd: encode response: %v\n", err)
		return 1
	}
	return resp.ReturnCode
}
