package history

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
)

// RepositoryError is returned when the workspace is not inside a git repository.
type RepositoryError struct {
	Root  string
	Cause error
}

func (e *RepositoryError) Error() string {
	if errors.Is(e.Cause, git.ErrRepositoryNotExists) {
		return "the current directory is not inside a git repository"
	}
	return fmt.Sprintf("failed to open repository at %s: %v", e.Root, e.Cause)
}
func (e *RepositoryError) Unwrap() error { return e.Cause }

// RevisionError is returned when a commit hash cannot be resolved.
type RevisionError struct {
	Hash  string
	Cause error
}

func (e *RevisionError) Error() string {
	return fmt.Sprintf("no commit matches %q: %v", e.Hash, e.Cause)
}
func (e *RevisionError) Unwrap() error { return e.Cause }

// -- Sentinels --

var (
	ErrHashRequired = errors.New("hash is required")
)

// openRepository opens the repository containing root, searching parent directories.
func openRepository(root string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, &RepositoryError{Root: root, Cause: err}
	}
	return repo, nil
}
