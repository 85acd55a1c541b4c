package executor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/statespace-tech/toolfront/internal/dispatch"
)

func TestAuditorRecordWritesNDJSONLine(t *testing.T) {
	dir := t.TempDir()
	fixed := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	old := auditClock
	auditClock = func() time.Time { return fixed }
	defer func() { auditClock = old }()

	a := NewAuditor(dir)
	a.Record(dispatch.BuiltinTool{Kind: dispatch.KindExec, Command: "ls", Args: []string{"-la"}}, "/work", fixed, Output{Text: "ok"}, nil)

	path := filepath.Join(dir, "20260731.log")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected audit log file: %v", err)
	}
	line := strings.TrimSpace(string(data))
	if !strings.Contains(line, `"kind":"exec"`) {
		t.Fatalf("expected exec kind in audit line, got %s", line)
	}
	if !strings.Contains(line, `"ls"`) {
		t.Fatalf("expected argv in audit line, got %s", line)
	}
}

func TestRedactStringMasksConfiguredLiteral(t *testing.T) {
	t.Setenv("TOOLFRONT_REDACT", "sekrit-token")
	got := redactString("Authorization: sekrit-token")
	if strings.Contains(got, "sekrit-token") {
		t.Fatalf("expected secret to be redacted, got %q", got)
	}
}

func TestRedactStringNoPatternsLeavesUnchanged(t *testing.T) {
	t.Setenv("TOOLFRONT_REDACT", "")
	got := redactString("nothing to see here")
	if got != "nothing to see here" {
		t.Fatalf("got %q", got)
	}
}

func TestSensitiveRequestValuesMatchesKeySuffixes(t *testing.T) {
	args := map[string]string{"API_KEY": "abc123", "file": "notes.md"}
	env := map[string]string{"GITHUB_TOKEN": "ghp_xyz", "LANG": "C.UTF-8"}
	got := SensitiveRequestValues(args, env)
	want := map[string]bool{"abc123": true, "ghp_xyz": true}
	if len(got) != len(want) {
		t.Fatalf("expected %d sensitive values, got %v", len(want), got)
	}
	for _, v := range got {
		if !want[v] {
			t.Fatalf("unexpected sensitive value %q", v)
		}
	}
}

func TestRedactStringMasksRequestScopedValue(t *testing.T) {
	t.Setenv("TOOLFRONT_REDACT", "")
	got := redactString("curl -H Authorization: ghp_xyz", "ghp_xyz")
	if strings.Contains(got, "ghp_xyz") {
		t.Fatalf("expected request-scoped secret to be redacted, got %q", got)
	}
}
