package file

import "os"

// pathResolver confines model-supplied paths to the workspace.
type pathResolver interface {
	Confine(verb, path string) (string, error)
}

// fileReader defines the minimal filesystem operations needed for reading files.
type fileReader interface {
	Stat(path string) (os.FileInfo, error)
	ReadFile(path string) ([]byte, error)
}
