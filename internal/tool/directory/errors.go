package directory

import (
	"errors"
	"fmt"
)

// NotADirectoryError is returned when list is pointed at a file.
type NotADirectoryError struct {
	Path string
}

func (e *NotADirectoryError) Error() string {
	return fmt.Sprintf("%s is not a directory", e.Path)
}
func (e *NotADirectoryError) Unwrap() error { return ErrNotADirectory }

// -- Sentinels --

var (
	ErrNotADirectory = errors.New("not a directory")
)
