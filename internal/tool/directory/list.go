package directory

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Cyclone1070/well/internal/tool"
	"github.com/Cyclone1070/well/internal/tool/service/fs"
)

// ListRequest is the argument shape of the list tool.
type ListRequest struct {
	Path string `mapstructure:"path"`
}

// ListTool describes the entries of a workspace directory, one ls-style row each.
type ListTool struct {
	fs       dirLister
	resolver pathResolver
	now      func() time.Time
}

// NewListTool creates a new ListTool with injected dependencies.
func NewListTool(fs dirLister, resolver pathResolver) *ListTool {
	if fs == nil {
		panic("fs is required")
	}
	if resolver == nil {
		panic("resolver is required")
	}
	return &ListTool{
		fs:       fs,
		resolver: resolver,
		now:      time.Now,
	}
}

func (t *ListTool) Name() string {
	return "list"
}

func (t *ListTool) Declaration() tool.Declaration {
	return tool.Declaration{
		Name:        "list",
		Description: "List the entries of a directory in the current project, like `ls -l`.",
		Parameters:  tool.PathParameters("Directory to list, relative to the project root"),
	}
}

func (t *ListTool) Request() any {
	return &ListRequest{}
}

// Execute lists the directory named by the request.
// Rows are sorted by name and formatted as
// "<type><perms> <nlink> <size>B <age> <name>" where age is seconds since modification.
func (t *ListTool) Execute(ctx context.Context, req any) (string, error) {
	r, ok := req.(*ListRequest)
	if !ok {
		return "", fmt.Errorf("invalid request type: %T", req)
	}

	abs, err := t.resolver.Confine("list", r.Path)
	if err != nil {
		return "", err
	}

	info, err := t.fs.Stat(abs)
	if err != nil {
		return "", &tool.IOError{Op: "stat", Path: r.Path, Cause: err}
	}
	if !info.IsDir() {
		return "", &NotADirectoryError{Path: r.Path}
	}

	entries, err := t.fs.ListDir(abs)
	if err != nil {
		return "", &tool.IOError{Op: "list", Path: r.Path, Cause: err}
	}

	now := t.now()
	var sb strings.Builder
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		sb.WriteString(formatRow(entry, now))
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

func formatRow(info os.FileInfo, now time.Time) string {
	age := int64(now.Sub(info.ModTime()).Seconds())
	if age < 0 {
		age = 0
	}
	return fmt.Sprintf("%s %4d %8dB %8d %s",
		modeString(info.Mode()), fs.LinkCount(info), info.Size(), age, info.Name())
}

// modeString renders the entry type and permission bits the way ls does,
// without the setuid/sticky decorations.
func modeString(mode os.FileMode) string {
	var b [10]byte
	switch {
	case mode&os.ModeDir != 0:
		b[0] = 'd'
	case mode&os.ModeSymlink != 0:
		b[0] = 'l'
	default:
		b[0] = '-'
	}
	const rwx = "rwxrwxrwx"
	perm := mode.Perm()
	for i := range 9 {
		if perm&(1<<uint(8-i)) != 0 {
			b[i+1] = rwx[i]
		} else {
			b[i+1] = '-'
		}
	}
	return string(b[:])
}
