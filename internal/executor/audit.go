package executor

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/statespace-tech/toolfront/internal/dispatch"
)

// auditClock is a package-level clock so tests can substitute a fixed
// time rather than asserting against time.Now(); production leaves it at
// its default.
var auditClock = time.Now

// Auditor appends one NDJSON line per tool execution to
// <dir>/YYYYMMDD.log. Audit failures never fail the triggering request:
// Record swallows its own errors so a full disk degrades logging, not
// tool execution.
type Auditor struct {
	dir string
}

// NewAuditor returns an Auditor writing under dir. The directory is
// created lazily on first Record, not here.
func NewAuditor(dir string) *Auditor {
	return &Auditor{dir: dir}
}

type auditEntry struct {
	TS          string   `json:"ts"`
	Kind        string   `json:"kind"`
	Argv        []string `json:"argv,omitempty"`
	URL         string   `json:"url,omitempty"`
	Method      string   `json:"method,omitempty"`
	WorkDir     string   `json:"workDir"`
	MS          int64    `json:"ms"`
	OutputBytes int      `json:"outputBytes"`
	Error       string   `json:"error,omitempty"`
}

// Record writes one audit line describing a completed tool invocation.
// Sensitive-looking argv/URL text is redacted before it ever reaches the
// entry. sensitive carries additional request-scoped literal values
// (see SensitiveRequestValues) to mask on top of the globally configured
// TOOLFRONT_REDACT patterns.
func (a *Auditor) Record(tool dispatch.BuiltinTool, workDir string, start time.Time, out Output, err error, sensitive ...string) {
	entry := auditEntry{
		TS:      auditClock().UTC().Format(time.RFC3339Nano),
		WorkDir: redactString(workDir, sensitive...),
		MS:      auditClock().Sub(start).Milliseconds(),
	}
	switch tool.Kind {
	case dispatch.KindExec:
		entry.Kind = "exec"
		entry.Argv = redactStrings(append([]string{tool.Command}, tool.Args...), sensitive...)
	case dispatch.KindGlob:
		entry.Kind = "glob"
		entry.Argv = []string{redactString(tool.Pattern, sensitive...)}
	case dispatch.KindCurl:
		entry.Kind = "curl"
		entry.URL = redactString(tool.URL, sensitive...)
		entry.Method = string(tool.Method)
	}
	if err != nil {
		entry.Error = redactString(err.Error(), sensitive...)
	} else {
		entry.OutputBytes = len(out.ToText())
	}
	_ = a.append(entry)
}

func (a *Auditor) append(entry auditEntry) error {
	b, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return err
	}
	fname := auditClock().UTC().Format("20060102") + ".log"
	path := filepath.Join(a.dir, fname)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(append(b, '\n'))
	return err
}
