// Package git enumerates branch names from a local repository. The
// checker only needs branch names as text labels; no other repository
// state is read.
package git

import (
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// BranchLister defines the interface for branch enumeration
// This enables dependency injection and testing with mock implementations
type BranchLister interface {
	// Branches returns the names of all local and remote branches in the
	// repository at repoPath (e.g., "feature/PROJ-12-foo",
	// "origin/PROJ-9-bar"). Symbolic HEAD references are excluded.
	Branches(repoPath string) ([]string, error)
}

// GoGitLister implements BranchLister using the go-git library
type GoGitLister struct{}

// NewGoGitLister creates a new branch lister
func NewGoGitLister() BranchLister {
	return &GoGitLister{}
}

// Branches returns all local and remote branch names in the repository
func (g *GoGitLister) Branches(repoPath string) ([]string, error) {
	if repoPath == "" {
		return nil, &GitError{
			Type:    "invalid_input",
			Message: "repository path cannot be empty",
		}
	}

	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, &GitError{
			Type:    "repository_not_found",
			Message: "failed to open Git repository",
			Err:     err,
			Context: repoPath,
		}
	}

	refs, err := repo.References()
	if err != nil {
		return nil, &GitError{
			Type:    "git_operation_error",
			Message: "failed to list references",
			Err:     err,
			Context: repoPath,
		}
	}

	var branches []string
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		// Symbolic refs (origin/HEAD -> origin/main) are pointers, not
		// branches.
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		name := ref.Name()
		if name.IsBranch() || name.IsRemote() {
			branches = append(branches, name.Short())
		}
		return nil
	})
	if err != nil {
		return nil, &GitError{
			Type:    "git_operation_error",
			Message: "failed to iterate references",
			Err:     err,
			Context: repoPath,
		}
	}

	return branches, nil
}
