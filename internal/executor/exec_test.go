package executor

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/statespace-tech/toolfront/internal/dispatch"
	"github.com/statespace-tech/toolfront/internal/toolerr"
)

func newTestExecutor() *Executor {
	return New(DefaultLimits(), nil)
}

func TestExecRejectsAbsolutePathArgument(t *testing.T) {
	e := newTestExecutor()
	_, err := e.Execute(context.Background(), dispatch.BuiltinTool{Kind: dispatch.KindExec, Command: "cat", Args: []string{"/etc/passwd"}}, t.TempDir())
	assertKind(t, err, toolerr.Security)
}

func TestExecRejectsPathTraversalArgument(t *testing.T) {
	e := newTestExecutor()
	_, err := e.Execute(context.Background(), dispatch.BuiltinTool{Kind: dispatch.KindExec, Command: "cat", Args: []string{"../../etc/passwd"}}, t.TempDir())
	assertKind(t, err, toolerr.Security)
}

func TestExecAllowsRelativePaths(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hello.txt"), []byte("hi there\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	e := newTestExecutor()
	out, err := e.Execute(context.Background(), dispatch.BuiltinTool{Kind: dispatch.KindExec, Command: "cat", Args: []string{"hello.txt"}}, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Text != "hi there\n" {
		t.Fatalf("got %q", out.Text)
	}
}

func TestExecCombinesStdoutAndStderr(t *testing.T) {
	dir := t.TempDir()
	e := newTestExecutor()
	out, err := e.Execute(context.Background(), dispatch.BuiltinTool{
		Kind:    dispatch.KindExec,
		Command: "sh",
		Args:    []string{"-c", "echo out; echo err 1>&2"},
	}, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Text != "out\n\nerr\n" {
		t.Fatalf("got %q", out.Text)
	}
}

func TestExecOutputTooLarge(t *testing.T) {
	dir := t.TempDir()
	e := New(Limits{MaxOutputBytes: 10, MaxListItems: 10, Timeout: DefaultLimits().Timeout}, nil)
	_, err := e.Execute(context.Background(), dispatch.BuiltinTool{
		Kind:    dispatch.KindExec,
		Command: "sh",
		Args:    []string{"-c", "echo this-is-a-long-line-that-exceeds-the-cap"},
	}, dir)
	assertKind(t, err, toolerr.OutputTooLarge)
}

func assertKind(t *testing.T, err error, want toolerr.Kind) {
	t.Helper()
	te, ok := err.(*toolerr.Error)
	if !ok {
		t.Fatalf("expected *toolerr.Error, got %T (%v)", err, err)
	}
	if te.Kind != want {
		t.Fatalf("expected kind %s, got %s", want, te.Kind)
	}
}

func TestExecOutputExactlyAtLimitSucceeds(t *testing.T) {
	dir := t.TempDir()
	e := New(Limits{MaxOutputBytes: 10, MaxListItems: 10, Timeout: DefaultLimits().Timeout}, nil)
	out, err := e.Execute(context.Background(), dispatch.BuiltinTool{
		Kind:    dispatch.KindExec,
		Command: "sh",
		Args:    []string{"-c", "printf 0123456789"},
	}, dir)
	if err != nil {
		t.Fatalf("unexpected error at exact limit: %v", err)
	}
	if out.Text != "0123456789" {
		t.Fatalf("got %q", out.Text)
	}
}

func TestExecTimeout(t *testing.T) {
	dir := t.TempDir()
	e := New(Limits{MaxOutputBytes: 1 << 20, MaxListItems: 10, Timeout: 100 * time.Millisecond}, nil)
	start := time.Now()
	_, err := e.Execute(context.Background(), dispatch.BuiltinTool{
		Kind:    dispatch.KindExec,
		Command: "sleep",
		Args:    []string{"5"},
	}, dir)
	assertKind(t, err, toolerr.Timeout)
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("timeout took too long to fire: %v", elapsed)
	}
}
