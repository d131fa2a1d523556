package file

import (
	"context"
	"fmt"

	"github.com/Cyclone1070/well/internal/config"
	"github.com/Cyclone1070/well/internal/tool"
	"github.com/Cyclone1070/well/internal/tool/helper/content"
)

// ReadRequest is the argument shape of the read tool.
type ReadRequest struct {
	Path string `mapstructure:"path"`
}

// ReadTool returns the text of a workspace file.
type ReadTool struct {
	fileOps  fileReader
	resolver pathResolver
	config   *config.Config
}

// NewReadTool creates a new ReadTool with injected dependencies.
func NewReadTool(fileOps fileReader, resolver pathResolver, cfg *config.Config) *ReadTool {
	if fileOps == nil {
		panic("fileOps is required")
	}
	if resolver == nil {
		panic("resolver is required")
	}
	if cfg == nil {
		panic("config is required")
	}
	return &ReadTool{
		fileOps:  fileOps,
		resolver: resolver,
		config:   cfg,
	}
}

func (t *ReadTool) Name() string {
	return "read"
}

func (t *ReadTool) Declaration() tool.Declaration {
	return tool.Declaration{
		Name:        "read",
		Description: "Read the full text of a file in the current project.",
		Parameters:  tool.PathParameters("File to read, relative to the project root"),
	}
}

func (t *ReadTool) Request() any {
	return &ReadRequest{}
}

// Execute reads the file named by the request.
// Directories, files over tools.max_file_size and non-UTF-8 content are rejected.
//
// Note: ctx is accepted for API consistency but not used - file I/O is synchronous.
func (t *ReadTool) Execute(ctx context.Context, req any) (string, error) {
	r, ok := req.(*ReadRequest)
	if !ok {
		return "", fmt.Errorf("invalid request type: %T", req)
	}

	abs, err := t.resolver.Confine("read", r.Path)
	if err != nil {
		return "", err
	}

	info, err := t.fileOps.Stat(abs)
	if err != nil {
		return "", &tool.IOError{Op: "stat", Path: r.Path, Cause: err}
	}
	if info.IsDir() {
		return "", &IsDirectoryError{Path: r.Path}
	}

	maxFileSize := t.config.Tools.MaxFileSize
	if info.Size() > maxFileSize {
		return "", &TooLargeError{Path: r.Path, Size: info.Size(), Limit: maxFileSize}
	}

	data, err := t.fileOps.ReadFile(abs)
	if err != nil {
		return "", &tool.IOError{Op: "read", Path: r.Path, Cause: err}
	}
	if !content.IsText(data) {
		return "", &BinaryFileError{Path: r.Path}
	}

	return string(data), nil
}
