package history

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Cyclone1070/well/internal/tool"
	"github.com/Cyclone1070/well/internal/tool/helper/content"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// LogRequest is the argument shape of the log tool; it takes nothing.
type LogRequest struct{}

// LogTool lists the commits reachable from HEAD, newest first.
type LogTool struct {
	workspaceRoot string
}

// NewLogTool creates a LogTool for the repository containing workspaceRoot.
func NewLogTool(workspaceRoot string) *LogTool {
	if workspaceRoot == "" {
		panic("workspaceRoot is required")
	}
	return &LogTool{workspaceRoot: workspaceRoot}
}

func (t *LogTool) Name() string {
	return "log"
}

func (t *LogTool) Declaration() tool.Declaration {
	return tool.Declaration{
		Name:        "log",
		Description: "Show the git commit history of the current project: date, hash, summary and author per commit.",
		Parameters:  tool.NoParameters(),
	}
}

func (t *LogTool) Request() any {
	return &LogRequest{}
}

// Execute walks the history from HEAD. Each line reads
// "[<commit time>] [<hash>] | <summary> {<author>}".
func (t *LogTool) Execute(ctx context.Context, req any) (string, error) {
	if _, ok := req.(*LogRequest); !ok {
		return "", fmt.Errorf("invalid request type: %T", req)
	}

	repo, err := openRepository(t.workspaceRoot)
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", nil
		}
		return "", &tool.IOError{Op: "resolve HEAD", Cause: err}
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return "", &tool.IOError{Op: "log", Cause: err}
	}
	defer iter.Close()

	var sb strings.Builder
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintf(&sb, "[%s] [%s] | %s {%s}\n",
			c.Committer.When.Format(time.RFC3339), c.Hash, content.FirstLine(c.Message), c.Author.Name)
		return nil
	})
	if err != nil {
		return "", &tool.IOError{Op: "log", Cause: err}
	}
	return sb.String(), nil
}
