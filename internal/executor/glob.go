package executor

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/statespace-tech/toolfront/internal/dispatch"
	"github.com/statespace-tech/toolfront/internal/toolerr"
)

// executeGlob expands tool.Pattern against workDir using recursive
// doublestar matching (plain filepath.Glob has no "**" support, which the
// pattern language this tool exposes relies on), returning at most
// MaxListItems entries. Every match is listed, directories included;
// only entries whose stat fails are skipped rather than failing the
// whole call. The deadline is checked between entries so a pathological
// match set cannot outlive the wall-clock limit.
func (e *Executor) executeGlob(ctx context.Context, tool dispatch.BuiltinTool, workDir string) (Output, error) {
	relPattern, err := confinePattern(workDir, tool.Pattern)
	if err != nil {
		return Output{}, err
	}

	matches, err := doublestar.Glob(os.DirFS(workDir), relPattern)
	if err != nil {
		return Output{}, toolerr.Wrap(toolerr.InvalidCommand, err, "invalid glob pattern")
	}

	files := make([]FileInfo, 0, len(matches))
	for _, m := range matches {
		if ctx.Err() != nil {
			return Output{}, toolerr.New(toolerr.Timeout, "tool execution timeout")
		}
		if len(files) >= e.limits.MaxListItems {
			break
		}
		info, statErr := os.Stat(filepath.Join(workDir, m))
		if statErr != nil {
			continue
		}
		files = append(files, FileInfo{
			Key:          filepath.ToSlash(m),
			Size:         info.Size(),
			LastModified: info.ModTime(),
		})
	}

	return Output{Kind: OutputFileList, Files: files}, nil
}

// confinePattern mirrors the content resolver's confinement rule: a
// leading "/" is stripped (the pattern is always root-relative), and any
// ".." segment is rejected outright rather than silently resolved.
func confinePattern(root, pattern string) (string, error) {
	trimmed := strings.TrimPrefix(pattern, "/")
	if strings.Contains(trimmed, "..") {
		return "", toolerr.PathTraversalAttempt(pattern, root)
	}
	return filepath.ToSlash(trimmed), nil
}
