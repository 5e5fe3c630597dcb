package git

import (
	"context"
	"fmt"
)

// Git wraps the command runner with the operations the sync workflows use.
// All commands execute with the working directory the Git was created for,
// which for the editor is the directory containing the edited file.
type Git struct {
	runner *CommandRunner
}

// New creates a Git bound to the given working directory
func New(workingDir string) *Git {
	return &Git{runner: NewCommandRunner(workingDir)}
}

// WorkingDir returns the directory commands execute in.
func (g *Git) WorkingDir() string {
	return g.runner.WorkingDir()
}

// StashPush stashes uncommitted changes with a marker message
func (g *Git) StashPush(ctx context.Context, message string) error {
	_, err := g.runner.Run(ctx, "stash", "push", "-m", message)
	return err
}

// StashPop restores the most recent stash entry
func (g *Git) StashPop(ctx context.Context) error {
	_, err := g.runner.Run(ctx, "stash", "pop")
	return err
}

// Add stages a single file by name
func (g *Git) Add(ctx context.Context, fileName string) error {
	_, err := g.runner.Run(ctx, "add", fileName)
	return err
}

// Commit commits staged changes with the given message
func (g *Git) Commit(ctx context.Context, message string) error {
	_, err := g.runner.Run(ctx, "commit", "-m", message)
	return err
}

// Push pushes the current branch to its configured remote
func (g *Git) Push(ctx context.Context) error {
	_, err := g.runner.Run(ctx, "push")
	return err
}

// Pull pulls from the configured remote, merging rather than rebasing
func (g *Git) Pull(ctx context.Context) error {
	_, err := g.runner.Run(ctx, "pull")
	return err
}

// RebaseAbort aborts an in-progress rebase
func (g *Git) RebaseAbort(ctx context.Context) error {
	_, err := g.runner.Run(ctx, "rebase", "--abort")
	return err
}

// MergeAbort aborts an in-progress merge
func (g *Git) MergeAbort(ctx context.Context) error {
	_, err := g.runner.Run(ctx, "merge", "--abort")
	return err
}

// SetUpstream sets the tracking branch for branch to remote/branch
func (g *Git) SetUpstream(ctx context.Context, remote, branch string) error {
	_, err := g.runner.Run(ctx, "branch", "--set-upstream-to", fmt.Sprintf("%s/%s", remote, branch), branch)
	return err
}
