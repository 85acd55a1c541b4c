package executor

import (
	"context"
	"io"
	"net/http"

	"github.com/statespace-tech/toolfront/internal/dispatch"
	"github.com/statespace-tech/toolfront/internal/toolerr"
)

const userAgent = "Toolfront/1.0"

// executeCurl performs the HTTP call described by tool, guarded against
// SSRF at two points: the URL itself (scheme, hostname denylist, IP
// literal classification) and, separately, every address the hostname
// actually resolves to, closing the gap between "this name looked safe"
// and "this name now points somewhere private." Redirects are not
// followed at all: a redirect hop would land somewhere the resolved-addr
// check never saw, so a 3xx response is returned to the caller as-is.
func (e *Executor) executeCurl(ctx context.Context, tool dispatch.BuiltinTool) (Output, error) {
	u, err := validateURL(tool.URL)
	if err != nil {
		return Output{}, err
	}
	if err := validateResolvedAddrs(ctx, u.Hostname()); err != nil {
		return Output{}, err
	}

	req, err := http.NewRequestWithContext(ctx, string(tool.Method), u.String(), nil)
	if err != nil {
		return Output{}, toolerr.Wrap(toolerr.InvalidCommand, err, "build request")
	}
	req.Header.Set("User-Agent", userAgent)

	client := newHTTPClient(e.limits.Timeout)
	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return Output{}, toolerr.New(toolerr.Timeout, "tool execution timeout")
		}
		return Output{}, toolerr.Wrap(toolerr.Network, err, "request failed")
	}
	defer resp.Body.Close()

	limited := io.LimitReader(resp.Body, int64(e.limits.MaxOutputBytes)+1)
	body, err := io.ReadAll(limited)
	if err != nil {
		return Output{}, toolerr.Wrap(toolerr.Network, err, "read response body")
	}
	if len(body) > e.limits.MaxOutputBytes {
		return Output{}, toolerr.OutputLimitExceeded(len(body), e.limits.MaxOutputBytes)
	}

	return Output{Kind: OutputText, Text: string(body)}, nil
}
