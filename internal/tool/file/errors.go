package file

import (
	"errors"
	"fmt"
)

// -- Error Types --

// IsDirectoryError is returned when read is pointed at a directory.
type IsDirectoryError struct {
	Path string
}

func (e *IsDirectoryError) Error() string {
	return fmt.Sprintf("%s is a directory, use list or outline instead", e.Path)
}
func (e *IsDirectoryError) Unwrap() error { return ErrIsDirectory }

// TooLargeError is returned when a file exceeds the configured size limit.
type TooLargeError struct {
	Path  string
	Size  int64
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("%s is too large to read (%d bytes, limit %d)", e.Path, e.Size, e.Limit)
}
func (e *TooLargeError) Unwrap() error { return ErrFileTooLarge }

// BinaryFileError is returned when a file is not valid UTF-8 text.
type BinaryFileError struct {
	Path string
}

func (e *BinaryFileError) Error() string {
	return fmt.Sprintf("%s does not contain valid UTF-8 text", e.Path)
}
func (e *BinaryFileError) Unwrap() error { return ErrBinaryFile }

// -- Sentinels --

var (
	ErrBinaryFile   = errors.New("file is binary")
	ErrFileTooLarge = errors.New("file too large")
	ErrIsDirectory  = errors.New("path is a directory")
)
