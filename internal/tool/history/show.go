package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Cyclone1070/well/internal/tool"
	"github.com/Cyclone1070/well/internal/tool/helper/content"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ShowRequest is the argument shape of the show tool.
type ShowRequest struct {
	Hash string `mapstructure:"hash"`
}

// ShowTool prints a commit header followed by its patch.
type ShowTool struct {
	workspaceRoot string
}

// NewShowTool creates a ShowTool for the repository containing workspaceRoot.
func NewShowTool(workspaceRoot string) *ShowTool {
	if workspaceRoot == "" {
		panic("workspaceRoot is required")
	}
	return &ShowTool{workspaceRoot: workspaceRoot}
}

func (t *ShowTool) Name() string {
	return "show"
}

func (t *ShowTool) Declaration() tool.Declaration {
	return tool.Declaration{
		Name:        "show",
		Description: "Show a git commit: author, date, message and the diff against its parent.",
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"hash": {Type: tool.TypeString, Description: "Commit hash, full or abbreviated"},
			},
			Required: []string{"hash"},
		},
	}
}

func (t *ShowTool) Request() any {
	return &ShowRequest{}
}

// Execute resolves the hash and renders the commit. A root commit is diffed
// against the empty tree.
func (t *ShowTool) Execute(ctx context.Context, req any) (string, error) {
	r, ok := req.(*ShowRequest)
	if !ok {
		return "", fmt.Errorf("invalid request type: %T", req)
	}
	hash := strings.TrimSpace(r.Hash)
	if hash == "" {
		return "", ErrHashRequired
	}

	repo, err := openRepository(t.workspaceRoot)
	if err != nil {
		return "", err
	}

	resolved, err := repo.ResolveRevision(plumbing.Revision(hash))
	if err != nil {
		return "", &RevisionError{Hash: hash, Cause: err}
	}
	commit, err := repo.CommitObject(*resolved)
	if err != nil {
		return "", &RevisionError{Hash: hash, Cause: err}
	}

	patch, err := commitPatch(ctx, commit)
	if err != nil {
		return "", &tool.IOError{Op: "diff", Path: commit.Hash.String(), Cause: err}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Commit: %s\n", commit.Hash)
	fmt.Fprintf(&sb, "Author: %s <%s>\n", commit.Author.Name, commit.Author.Email)
	fmt.Fprintf(&sb, "Date: %s\n", commit.Committer.When.Format(time.RFC3339))
	fmt.Fprintf(&sb, "\n    %s\n\n", content.FirstLine(commit.Message))
	sb.WriteString(patch.String())
	return sb.String(), nil
}

func commitPatch(ctx context.Context, commit *object.Commit) (*object.Patch, error) {
	tree, err := commit.Tree()
	if err != nil {
		return nil, err
	}

	var parentTree *object.Tree
	if commit.NumParents() > 0 {
		parent, err := commit.Parent(0)
		if err != nil {
			return nil, err
		}
		if parentTree, err = parent.Tree(); err != nil {
			return nil, err
		}
	}

	changes, err := object.DiffTreeWithOptions(ctx, parentTree, tree, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, err
	}
	return changes.PatchContext(ctx)
}
