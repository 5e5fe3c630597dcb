// Package errors provides sentinel errors and custom error types for the helowrite application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrNoFileOpen indicates that no file is open in the editor
	ErrNoFileOpen = errors.New("no file open")

	// ErrStashConflict indicates that restoring stashed changes hit a conflict
	ErrStashConflict = errors.New("stash conflict")

	// ErrNoUpstream indicates that the current branch has no tracking branch
	ErrNoUpstream = errors.New("no upstream branch")

	// ErrVaultPath indicates an invalid Obsidian vault path
	ErrVaultPath = errors.New("vault path must be an existing directory")
)

// StashConflictError represents a conflict encountered while popping the stash
type StashConflictError struct {
	Operation string
	Details   string
}

func (e *StashConflictError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("conflict restoring stashed changes during %s: %s", e.Operation, e.Details)
	}
	return fmt.Sprintf("conflict restoring stashed changes during %s", e.Operation)
}

// Is returns true if the target error is ErrStashConflict
func (e *StashConflictError) Is(target error) bool {
	return target == ErrStashConflict
}

// NewStashConflictError creates a new StashConflictError
func NewStashConflictError(operation string, details string) *StashConflictError {
	return &StashConflictError{
		Operation: operation,
		Details:   details,
	}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// Details returns the most useful human-readable description of the failure:
// stderr if present, otherwise stdout, otherwise the underlying exec error.
func (e *GitCommandError) Details() string {
	if s := strings.TrimSpace(e.Stderr); s != "" {
		return s
	}
	if s := strings.TrimSpace(e.Stdout); s != "" {
		return s
	}
	if e.Err != nil {
		return fmt.Sprintf("command failed: %v", e.Err)
	}
	return "command failed"
}

// Output returns stdout and stderr joined, for substring classification.
func (e *GitCommandError) Output() string {
	return e.Stdout + "\n" + e.Stderr
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
