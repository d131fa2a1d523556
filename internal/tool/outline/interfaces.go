package outline

import "os"

// pathResolver confines model-supplied paths to the workspace.
type pathResolver interface {
	Confine(verb, path string) (string, error)
	Rel(abs string) string
}

// fileSystem defines the filesystem operations the outline tool needs.
type fileSystem interface {
	Stat(path string) (os.FileInfo, error)
	ListDir(path string) ([]os.FileInfo, error)
	ReadFile(path string) ([]byte, error)
}

// ignoreMatcher decides which directory entries are left out of an outline.
type ignoreMatcher interface {
	ShouldIgnore(relativePath string, isDir bool) bool
}
