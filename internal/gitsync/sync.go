// Package gitsync implements the stash-protected git push and pull workflows
// the editor runs on the file being edited. Each workflow is a fixed sequence
// of git commands executed in the file's directory; expected conditions
// (nothing to stash, nothing to commit, already up to date) are success
// paths, a conflict while restoring the stash safe-aborts the operation, and
// unexpected failures are appended to a diagnostic log before being surfaced.
package gitsync

import (
	"context"
	goerrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"helowrite.dev/helowrite/internal/config"
	helowriteerrors "helowrite.dev/helowrite/internal/errors"
	"helowrite.dev/helowrite/internal/git"
	"helowrite.dev/helowrite/internal/output"
)

// LogFileName is the diagnostic log file, created in the config directory.
// The log is append-only and never rotated or truncated.
const LogFileName = "git_sync_errors.log"

// Stage names used in log entries and error classification.
const (
	stageStashPush = "git stash push"
	stageStashPop  = "git stash pop"
	stageAdd       = "git add"
	stageCommit    = "git commit"
	stagePull      = "git pull"
	stagePush      = "git push"
)

// Stash marker messages. A marker makes editor-created stash entries
// recognizable in `git stash list` after a safe-abort.
const (
	pushStashMessage = "auto-stash before sync"
	pullStashMessage = "auto-stash before pull"
)

// Outcome is the terminal state of a sync workflow.
type Outcome int

const (
	// OutcomeSuccess means the workflow ran to completion
	OutcomeSuccess Outcome = iota
	// OutcomeNoOp means the workflow completed with nothing to do
	OutcomeNoOp
	// OutcomeAborted means a stage failed and the workflow stopped
	OutcomeAborted
	// OutcomeSafeAborted means a stash conflict stopped the workflow after a
	// best-effort rebase/merge abort
	OutcomeSafeAborted
)

// Result is what a workflow reports back to the editor shell. Success and
// failure use the same channel; Severity is the only distinction.
type Result struct {
	Outcome  Outcome
	Message  string
	Severity output.Severity
	Timeout  time.Duration

	// Err is the failure behind an Aborted or SafeAborted outcome. A safe
	// abort carries a *errors.StashConflictError.
	Err error

	// Content is the file's on-disk content captured after a completed
	// pull, and HasContent reports whether the file existed. Workflows run
	// on worker goroutines and never mutate the document; the caller
	// applies the content (Document.ApplyReload) on its own goroutine.
	Content    string
	HasContent bool
}

const (
	successTimeout = 2 * time.Second
	errorTimeout   = 10 * time.Second
)

// Syncer runs git sync workflows. It is stateless apart from the diagnostic
// log path; every invocation discovers repository state from scratch.
type Syncer struct {
	logPath string
}

// NewSyncer creates a Syncer writing diagnostics to logPath.
func NewSyncer(logPath string) *Syncer {
	return &Syncer{logPath: logPath}
}

// DefaultLogPath returns the diagnostic log location inside the config
// directory.
func DefaultLogPath(store *config.Store) string {
	return filepath.Join(store.Dir(), LogFileName)
}

func success(message string) Result {
	return Result{
		Outcome:  OutcomeSuccess,
		Message:  message,
		Severity: output.SeverityInfo,
		Timeout:  successTimeout,
	}
}

func noOp(message string) Result {
	return Result{
		Outcome:  OutcomeNoOp,
		Message:  message,
		Severity: output.SeverityInfo,
		Timeout:  successTimeout,
	}
}

// fail logs an unexpected stage failure and builds the user-facing result.
// operation is "push" or "pull"; stage is the command that failed.
func (s *Syncer) fail(operation, stage string, err error) Result {
	var cmdErr *helowriteerrors.GitCommandError
	if !goerrors.As(err, &cmdErr) {
		// Not a command failure; log and surface verbatim.
		msg := fmt.Sprintf("Error: %v", err)
		s.appendLog(msg + "\n")
		return Result{
			Outcome:  OutcomeAborted,
			Message:  msg,
			Severity: output.SeverityError,
			Timeout:  errorTimeout,
			Err:      err,
		}
	}

	details := cmdErr.Details()

	// A process-level failure whose output still says "up to date" is a
	// success in disguise (some git versions exit non-zero here).
	if git.Classify(err) == git.ConditionUpToDate {
		return noOp(fmt.Sprintf("Git %s completed (already up to date)", operation))
	}

	message := s.classifyFailureMessage(operation, err)
	s.appendLog(fmt.Sprintf("Command '%s' failed: %s\n", stage, details))
	return Result{
		Outcome:  OutcomeAborted,
		Message:  message,
		Severity: output.SeverityError,
		Timeout:  errorTimeout,
		Err:      err,
	}
}

// classifyFailureMessage maps a failure to an actionable user message.
func (s *Syncer) classifyFailureMessage(operation string, err error) string {
	if operation == "push" {
		switch git.Classify(err) {
		case git.ConditionRemoteAhead:
			return "Git push failed: remote has changes you don't have. Try pulling first with Alt+H, then push again."
		case git.ConditionNoUpstream:
			return "Git push failed: no upstream branch set. Try pulling first with Alt+H to set it up."
		}
	}
	return fmt.Sprintf("Git %s failed - check %s for details. You may need to resolve conflicts manually.", operation, LogFileName)
}

// safeAbort handles a conflict while popping the stash: report the conflict
// and make a best-effort attempt to abort any rebase or merge the pop left
// in progress. Abort failures are ignored; there may be nothing to abort.
func (s *Syncer) safeAbort(ctx context.Context, g *git.Git, operation string, err error) Result {
	_ = g.RebaseAbort(ctx)
	_ = g.MergeAbort(ctx)

	details := ""
	var cmdErr *helowriteerrors.GitCommandError
	if goerrors.As(err, &cmdErr) {
		details = cmdErr.Details()
	}

	return Result{
		Outcome:  OutcomeSafeAborted,
		Message:  fmt.Sprintf("Git %s aborted: conflicts detected when restoring stashed changes. Please resolve manually.", operation),
		Severity: output.SeverityError,
		Timeout:  errorTimeout,
		Err:      helowriteerrors.NewStashConflictError(operation, details),
	}
}

// appendLog appends a line to the diagnostic log. The log is best-effort;
// a logging failure must never surface to the editor.
func (s *Syncer) appendLog(line string) {
	if s.logPath == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.logPath), 0o750); err != nil {
		return
	}
	f, err := os.OpenFile(s.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = f.WriteString(line)
}
