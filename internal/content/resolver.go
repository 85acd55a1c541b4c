// Package content resolves a client-supplied request path to a markdown
// file underneath a fixed content root, refusing to ever read or report a
// path outside that root.
package content

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/statespace-tech/toolfront/internal/toolerr"
)

// Resolver turns a request path into either the markdown file's contents
// or its filesystem path (the latter is what the executor uses to derive
// a tool's working directory).
type Resolver interface {
	ResolveString(requestPath string) (string, error)
	ResolvePath(requestPath string) (string, error)
}

// LocalResolver resolves against a single canonical root directory on the
// local filesystem. It holds only immutable configuration, so a single
// instance may be shared across concurrent requests.
type LocalResolver struct {
	root string
}

// NewLocalResolver canonicalizes root (resolving symlinks) and returns a
// resolver bound to it.
func NewLocalResolver(root string) (*LocalResolver, error) {
	canon, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, toolerr.Wrap(toolerr.Internal, err, "resolve content root")
	}
	abs, err := filepath.Abs(canon)
	if err != nil {
		return nil, toolerr.Wrap(toolerr.Internal, err, "absolute content root")
	}
	return &LocalResolver{root: abs}, nil
}

// ResolveString reads and returns the resolved file's contents.
func (r *LocalResolver) ResolveString(requestPath string) (string, error) {
	p, err := r.ResolvePath(requestPath)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return "", toolerr.Wrap(toolerr.Internal, err, "read resolved file")
	}
	return string(data), nil
}

// ResolvePath resolves requestPath to an absolute filesystem path within
// the root, without reading it.
//
// requestPath is first stripped of any leading "/" and rejected outright
// if it contains "..". The candidate is then resolved to a concrete file
// via resolveToFile (direct file, dir/README.md, or a ".md" suffix
// fallback), canonicalized, and checked to still have the root as a path
// prefix; the last check is defense in depth against a symlink inside
// the root pointing back out of it.
func (r *LocalResolver) ResolvePath(requestPath string) (string, error) {
	candidate, err := r.validatePath(requestPath)
	if err != nil {
		return "", err
	}
	resolved, err := resolveToFile(candidate, requestPath)
	if err != nil {
		return "", err
	}
	canon, err := filepath.EvalSymlinks(resolved)
	if err != nil {
		return "", toolerr.NotFoundPath(requestPath)
	}
	if !withinRoot(canon, r.root) {
		return "", toolerr.PathTraversalAttempt(requestPath, r.root)
	}
	return canon, nil
}

func (r *LocalResolver) validatePath(requestPath string) (string, error) {
	trimmed := strings.TrimLeft(requestPath, "/")
	if strings.Contains(trimmed, "..") {
		return "", toolerr.PathTraversalAttempt(requestPath, r.root)
	}
	if trimmed == "" {
		return r.root, nil
	}
	return filepath.Join(r.root, trimmed), nil
}

// resolveToFile maps a validated-but-not-yet-resolved candidate to a
// concrete file: the candidate itself if it is a regular file; its
// "README.md" if the candidate is a directory; otherwise the candidate
// with a ".md" suffix appended, if that is a regular file. original is
// the caller's own request path, used only for the NotFound error
// message.
func resolveToFile(candidate, original string) (string, error) {
	info, err := os.Stat(candidate)
	if err == nil {
		if info.IsDir() {
			readme := filepath.Join(candidate, "README.md")
			if st, err := os.Stat(readme); err == nil && !st.IsDir() {
				return readme, nil
			}
			return "", toolerr.NotFoundPath(original)
		}
		return candidate, nil
	}
	withExt := candidate + ".md"
	if st, err := os.Stat(withExt); err == nil && !st.IsDir() {
		return withExt, nil
	}
	return "", toolerr.NotFoundPath(original)
}

// withinRoot reports whether canon is root itself or a descendant of it,
// compared component-wise via filepath.Rel so that a sibling directory
// sharing root as a string prefix (e.g. root "/srv/docs" and candidate
// "/srv/docs-evil") is not mistaken for being inside it.
func withinRoot(canon, root string) bool {
	rel, err := filepath.Rel(root, canon)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return !strings.HasPrefix(rel, "..")
}
