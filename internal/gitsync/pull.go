package gitsync

import (
	"context"
	"fmt"
	"os"

	helowriteerrors "helowrite.dev/helowrite/internal/errors"
	"helowrite.dev/helowrite/internal/git"
	"helowrite.dev/helowrite/internal/session"
)

// Pull fetches and merges remote changes for the document's repository, then
// captures the file's on-disk content in the result so the caller can reload
// its document. The document itself is never mutated here; Pull runs on a
// worker goroutine and only reads the document's immutable path.
//
// Stage sequence: stash push, pull, stash pop, reload. A branch with no
// tracking information gets one recovery attempt: infer the upstream from
// the current branch and the "origin" remote, set it, and retry the pull
// once. Any other failure, or a failed recovery, surfaces the original
// error.
func (s *Syncer) Pull(ctx context.Context, doc *session.Document) Result {
	g := git.New(doc.Dir())
	fileName := doc.Name()

	if err := g.StashPush(ctx, pullStashMessage); err != nil {
		if git.Classify(err) != git.ConditionNothingToStash {
			return s.fail("pull", stageStashPush, err)
		}
	}

	if err := g.Pull(ctx); err != nil {
		switch git.Classify(err) {
		case git.ConditionUpToDate:
			// Nothing to merge; carry on to restore the stash.
		case git.ConditionNoTracking:
			if recoverErr := s.recoverUpstream(ctx, g); recoverErr != nil {
				// Surface the original pull failure, not the recovery's.
				return s.fail("pull", stagePull, err)
			}
		default:
			return s.fail("pull", stagePull, err)
		}
	}

	if err := g.StashPop(ctx); err != nil {
		if git.Classify(err) != git.ConditionNoStashEntries {
			return s.safeAbort(ctx, g, "pull", err)
		}
	}

	data, err := os.ReadFile(doc.Path)
	if err != nil && !os.IsNotExist(err) {
		return s.fail("pull", stagePull, fmt.Errorf("error reloading file after pull: %w", err))
	}

	result := success(fmt.Sprintf("Git pull completed for %s", fileName))
	if err == nil {
		result.Content = string(data)
		result.HasContent = true
	}
	return result
}

// recoverUpstream infers and sets the tracking branch when a pull failed for
// lack of one, then retries the pull. Recovery only applies when a remote
// named "origin" exists.
func (s *Syncer) recoverUpstream(ctx context.Context, g *git.Git) error {
	branch, err := g.CurrentBranch()
	if err != nil {
		return err
	}

	hasOrigin, err := g.HasRemote("origin")
	if err != nil {
		return err
	}
	if !hasOrigin {
		return fmt.Errorf("%w and no origin remote to infer one from", helowriteerrors.ErrNoUpstream)
	}

	if err := g.SetUpstream(ctx, "origin", branch); err != nil {
		return err
	}

	return g.Pull(ctx)
}
