package path

import (
	"errors"
	"fmt"
)

// -- Error Types --

// WorkspaceRootError is returned when the workspace root is invalid.
type WorkspaceRootError struct {
	Root  string
	Cause error
}

func (e *WorkspaceRootError) Error() string {
	return fmt.Sprintf("invalid workspace root %s: %v", e.Root, e.Cause)
}
func (e *WorkspaceRootError) Unwrap() error { return e.Cause }

// OutsideWorkspaceError is returned when a relative path climbs above the
// workspace root.
type OutsideWorkspaceError struct {
	Verb string
	Path string
}

func (e *OutsideWorkspaceError) Error() string {
	return fmt.Sprintf("cannot %s files outside the current directory", e.Verb)
}
func (e *OutsideWorkspaceError) Unwrap() error          { return ErrOutsideWorkspace }
func (e *OutsideWorkspaceError) SandboxViolation() bool { return true }

// AbsolutePathError is returned when a tool is handed an absolute path.
type AbsolutePathError struct {
	Verb string
	Path string
}

func (e *AbsolutePathError) Error() string {
	return fmt.Sprintf("only paths relative to the current directory are available to %s", e.Verb)
}
func (e *AbsolutePathError) Unwrap() error          { return ErrAbsolutePath }
func (e *AbsolutePathError) SandboxViolation() bool { return true }

// IsSandboxViolation reports whether err was raised by path confinement.
func IsSandboxViolation(err error) bool {
	var v interface{ SandboxViolation() bool }
	return errors.As(err, &v) && v.SandboxViolation()
}

// -- Sentinels --

var (
	ErrOutsideWorkspace    = errors.New("path is outside workspace root")
	ErrAbsolutePath        = errors.New("path is absolute")
	ErrWorkspaceRootNotSet = errors.New("workspace root not set")
	ErrNotADirectory       = errors.New("not a directory")
)
