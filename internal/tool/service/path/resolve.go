package path

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolver confines model-supplied paths to a workspace root.
type Resolver struct {
	workspaceRoot string
}

// NewResolver creates a new path resolver for the given workspace.
func NewResolver(workspaceRoot string) *Resolver {
	return &Resolver{
		workspaceRoot: workspaceRoot,
	}
}

// CanonicaliseRoot canonicalises a workspace root path by making it absolute and resolving symlinks.
// Returns an error if the path doesn't exist or isn't a directory.
func CanonicaliseRoot(root string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", &WorkspaceRootError{Root: absRoot, Cause: err}
	}

	resolved, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", &WorkspaceRootError{Root: absRoot, Cause: err}
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", &WorkspaceRootError{Root: resolved, Cause: err}
	}
	if !info.IsDir() {
		return "", &WorkspaceRootError{Root: resolved, Cause: fmt.Errorf("%w: %s", ErrNotADirectory, resolved)}
	}
	return resolved, nil
}

// Root returns the workspace root the resolver confines to.
func (r *Resolver) Root() string {
	return r.workspaceRoot
}

// SpillsUp reports whether walking p component by component ever climbs above
// the directory it starts from. The check is purely lexical: a named component
// descends one level, ".." ascends one, and root, "." and empty components are
// ignored.
func SpillsUp(p string) bool {
	depth := 0
	for _, component := range strings.Split(filepath.ToSlash(p), "/") {
		switch component {
		case "", ".":
		case "..":
			depth--
			if depth < 0 {
				return true
			}
		default:
			depth++
		}
	}
	return false
}

// Confine validates a model-supplied path for the given verb ("read", "list")
// and returns it joined onto the workspace root. Absolute paths and paths that
// spill above the root are rejected before any filesystem access. An existing
// path whose symlinks lead outside the root is rejected as well.
func (r *Resolver) Confine(verb, p string) (string, error) {
	if r.workspaceRoot == "" {
		return "", ErrWorkspaceRootNotSet
	}
	if filepath.IsAbs(p) || strings.HasPrefix(p, "/") {
		return "", &AbsolutePathError{Verb: verb, Path: p}
	}
	if SpillsUp(p) {
		return "", &OutsideWorkspaceError{Verb: verb, Path: p}
	}

	abs := filepath.Join(r.workspaceRoot, filepath.Clean(p))

	// Missing paths fail later on stat with the usual I/O error.
	target, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return abs, nil
	}
	if !r.contains(target) {
		return "", &OutsideWorkspaceError{Verb: verb, Path: p}
	}
	return abs, nil
}

func (r *Resolver) contains(target string) bool {
	rel, err := filepath.Rel(r.workspaceRoot, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Rel returns abs relative to the workspace root using forward slashes, or
// "." for the root itself.
func (r *Resolver) Rel(abs string) string {
	rel, err := filepath.Rel(r.workspaceRoot, abs)
	if err != nil {
		return abs
	}
	return filepath.ToSlash(rel)
}
