package directory

import "os"

// pathResolver confines model-supplied paths to the workspace.
type pathResolver interface {
	Confine(verb, path string) (string, error)
}

// dirLister defines the filesystem operations needed for listing directories.
type dirLister interface {
	Stat(path string) (os.FileInfo, error)
	ListDir(path string) ([]os.FileInfo, error)
}
