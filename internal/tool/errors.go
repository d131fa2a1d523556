package tool

import (
	"errors"
	"fmt"
)

// -- Sentinels --

var (
	ErrUnknownTool  = errors.New("no such function")
	ErrMissingField = errors.New("missing field")
)

// -- Error Types --

// UnknownToolError is reported when the model names a tool that is not registered.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("%v: `%s`", ErrUnknownTool, e.Name)
}
func (e *UnknownToolError) Unwrap() error { return ErrUnknownTool }

// ArgumentError is reported when a tool call's arguments cannot be decoded
// into the tool's request shape.
type ArgumentError struct {
	Tool  string
	Cause error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %v", e.Tool, e.Cause)
}
func (e *ArgumentError) Unwrap() error { return e.Cause }

// IOError is reported when a tool fails against the filesystem or repository.
type IOError struct {
	Op    string
	Path  string
	Cause error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Cause)
}
func (e *IOError) Unwrap() error { return e.Cause }
