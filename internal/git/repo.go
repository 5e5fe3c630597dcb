package git

import (
	"fmt"

	gogit "github.com/go-git/go-git/v5"
)

// openRepository opens the repository containing the runner's working directory
func (g *Git) openRepository() (*gogit.Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(g.runner.WorkingDir(), &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}
	return repo, nil
}

// IsRepository reports whether the working directory is inside a git work tree
func (g *Git) IsRepository() bool {
	_, err := g.openRepository()
	return err == nil
}

// RepoRoot returns the root directory of the repository containing the
// working directory
func (g *Git) RepoRoot() (string, error) {
	repo, err := g.openRepository()
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}

	return worktree.Filesystem.Root(), nil
}

// CurrentBranch returns the name of the checked-out branch
func (g *Git) CurrentBranch() (string, error) {
	repo, err := g.openRepository()
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", fmt.Errorf("HEAD is not on a branch")
	}

	return head.Name().Short(), nil
}

// Remotes returns the names of the configured remotes
func (g *Git) Remotes() ([]string, error) {
	repo, err := g.openRepository()
	if err != nil {
		return nil, err
	}

	remotes, err := repo.Remotes()
	if err != nil {
		return nil, fmt.Errorf("failed to list remotes: %w", err)
	}

	names := make([]string, 0, len(remotes))
	for _, remote := range remotes {
		names = append(names, remote.Config().Name)
	}
	return names, nil
}

// HasRemote reports whether a remote with the given name is configured
func (g *Git) HasRemote(name string) (bool, error) {
	names, err := g.Remotes()
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}
