package gitsync

import (
	"context"
	"fmt"

	"helowrite.dev/helowrite/internal/git"
	"helowrite.dev/helowrite/internal/session"
)

// Push stages, commits, and pushes the document's file. Uncommitted changes
// in the rest of the tree are shielded by a stash push/pop pair before the
// file is staged. Like Pull, this runs on a worker goroutine and only reads
// the document's immutable path.
//
// Stage sequence: stash push, stash pop, add, commit, push. A commit with
// nothing to commit is a terminal no-op; the push stage never runs.
func (s *Syncer) Push(ctx context.Context, doc *session.Document) Result {
	g := git.New(doc.Dir())
	fileName := doc.Name()

	// Stash any uncommitted changes.
	if err := g.StashPush(ctx, pushStashMessage); err != nil {
		if git.Classify(err) != git.ConditionNothingToStash {
			return s.fail("push", stageStashPush, err)
		}
	}

	// Restore them. A conflict here means the working tree cannot be put
	// back together cleanly; stop before touching the index.
	if err := g.StashPop(ctx); err != nil {
		if git.Classify(err) != git.ConditionNoStashEntries {
			return s.safeAbort(ctx, g, "push", err)
		}
	}

	// Stage only the edited file, never the whole tree.
	if err := g.Add(ctx, fileName); err != nil {
		return s.fail("push", stageAdd, err)
	}

	if err := g.Commit(ctx, fmt.Sprintf("Update %s", fileName)); err != nil {
		if git.Classify(err) == git.ConditionNothingToCommit {
			return noOp("No changes to commit")
		}
		return s.fail("push", stageCommit, err)
	}

	if err := g.Push(ctx); err != nil {
		if git.Classify(err) != git.ConditionUpToDate {
			return s.fail("push", stagePush, err)
		}
	}

	return success(fmt.Sprintf("Git push completed for %s", fileName))
}
