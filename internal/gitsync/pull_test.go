package gitsync_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	helowriteerrors "helowrite.dev/helowrite/internal/errors"
	"helowrite.dev/helowrite/internal/gitsync"
	"helowrite.dev/helowrite/internal/output"
	"helowrite.dev/helowrite/internal/session"
	"helowrite.dev/helowrite/testhelpers"
)

func TestPullUpToDate(t *testing.T) {
	t.Parallel()
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	_, err := scene.Repo.CreateBareRemote("origin")
	require.NoError(t, err)
	require.NoError(t, scene.Repo.PushBranch("origin", "main"))

	syncer, _ := newSyncer(scene)
	doc := openDoc(t, scene, "note.md")
	result := syncer.Pull(context.Background(), doc)

	require.Equal(t, gitsync.OutcomeSuccess, result.Outcome)
	require.Contains(t, result.Message, "Git pull completed for note.md")
	require.True(t, result.HasContent)
	require.False(t, doc.ApplyReload(result.Content), "unchanged content reloads as a no-op")
}

func TestPullReloadsAndClampsCursor(t *testing.T) {
	t.Parallel()
	scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
		return s.Repo.CommitFile("note.md",
			"l0\nl1\nl2\nl3\nl4\nl5\nl6\nl7\nl8\nl9", "ten lines")
	})
	bareDir, err := scene.Repo.CreateBareRemote("origin")
	require.NoError(t, err)
	require.NoError(t, scene.Repo.PushBranch("origin", "main"))

	other, err := testhelpers.CloneGitRepo(scene.Dir+"-other", bareDir)
	require.NoError(t, err)
	require.NoError(t, other.CommitFile("note.md", "alpha\nbravo\ncharlie\ndelta", "shrink"))
	require.NoError(t, other.PushBranch("origin", "main"))

	syncer, _ := newSyncer(scene)
	doc := openDoc(t, scene, "note.md")
	doc.Cursor = session.Position{Line: 5, Col: 3}

	result := syncer.Pull(context.Background(), doc)

	require.Equal(t, gitsync.OutcomeSuccess, result.Outcome)
	require.True(t, result.HasContent)
	require.Equal(t, "alpha\nbravo\ncharlie\ndelta", result.Content)

	// The caller applies the pulled content; the cursor clamps to the
	// shrunken file.
	require.True(t, doc.ApplyReload(result.Content))
	require.Equal(t, session.Position{Line: 3, Col: 3}, doc.Cursor)

	content, err := scene.Repo.ReadFile("note.md")
	require.NoError(t, err)
	require.Equal(t, "alpha\nbravo\ncharlie\ndelta", content)
}

func TestPullWhileEditingBuffer(t *testing.T) {
	t.Parallel()
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	_, err := scene.Repo.CreateBareRemote("origin")
	require.NoError(t, err)
	require.NoError(t, scene.Repo.PushBranch("origin", "main"))

	syncer, _ := newSyncer(scene)
	doc := openDoc(t, scene, "note.md")

	// Editing continues on its own goroutine while the workflow runs; the
	// workflow must only read the document's immutable path.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			doc.UpdateDirty(strings.Repeat("x", i%7))
		}
	}()

	result := syncer.Pull(context.Background(), doc)
	<-done

	require.Equal(t, gitsync.OutcomeSuccess, result.Outcome)
	require.Equal(t, "hello world\n", doc.Snapshot(), "workflow must not mutate the document")
}

func TestPullShieldsLocalEdits(t *testing.T) {
	t.Parallel()
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	bareDir, err := scene.Repo.CreateBareRemote("origin")
	require.NoError(t, err)
	require.NoError(t, scene.Repo.PushBranch("origin", "main"))

	other, err := testhelpers.CloneGitRepo(scene.Dir+"-other", bareDir)
	require.NoError(t, err)
	require.NoError(t, other.CommitFile("other.md", "from remote\n", "add other"))
	require.NoError(t, other.PushBranch("origin", "main"))

	syncer, _ := newSyncer(scene)
	doc := openDoc(t, scene, "note.md")
	require.NoError(t, scene.Repo.WriteFile("note.md", "local edit\n"))

	result := syncer.Pull(context.Background(), doc)

	require.Equal(t, gitsync.OutcomeSuccess, result.Outcome)

	// The remote commit landed and the local edit survived the round trip.
	fetched, err := scene.Repo.ReadFile("other.md")
	require.NoError(t, err)
	require.Equal(t, "from remote\n", fetched)

	content, err := scene.Repo.ReadFile("note.md")
	require.NoError(t, err)
	require.Equal(t, "local edit\n", content)
	require.True(t, result.HasContent)
	require.Equal(t, "local edit\n", result.Content)
}

func TestPullRecoversMissingUpstream(t *testing.T) {
	t.Parallel()
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	_, err := scene.Repo.CreateBareRemote("origin")
	require.NoError(t, err)
	require.NoError(t, scene.Repo.PushBranchNoUpstream("origin", "main"))

	syncer, _ := newSyncer(scene)
	doc := openDoc(t, scene, "note.md")
	result := syncer.Pull(context.Background(), doc)

	require.Equal(t, gitsync.OutcomeSuccess, result.Outcome)

	branch, err := scene.Repo.CurrentBranchName()
	require.NoError(t, err)
	require.Equal(t, "main", branch)

	upstream, err := scene.Repo.UpstreamOf(branch)
	require.NoError(t, err)
	require.Equal(t, "origin/"+branch, upstream)
}

func TestPullNoTrackingWithoutOriginFails(t *testing.T) {
	t.Parallel()
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

	// The only remote is not named origin, so the upstream cannot be
	// inferred and the original pull failure surfaces.
	_, err := scene.Repo.CreateBareRemote("backup")
	require.NoError(t, err)
	require.NoError(t, scene.Repo.PushBranchNoUpstream("backup", "main"))

	syncer, logPath := newSyncer(scene)
	doc := openDoc(t, scene, "note.md")
	result := syncer.Pull(context.Background(), doc)

	require.Equal(t, gitsync.OutcomeAborted, result.Outcome)
	require.Equal(t, output.SeverityError, result.Severity)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "Command 'git pull' failed:")
}

func TestPullStashPopConflictSafeAborts(t *testing.T) {
	t.Parallel()
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	_, err := scene.Repo.CreateBareRemote("origin")
	require.NoError(t, err)
	require.NoError(t, scene.Repo.PushBranch("origin", "main"))

	require.NoError(t, scene.Repo.WriteFile("note.md", "stashed version\n"))
	require.NoError(t, scene.Repo.StashPush("older edit"))
	require.NoError(t, scene.Repo.CommitFile("note.md", "committed version\n", "diverge"))

	syncer, _ := newSyncer(scene)
	doc := openDoc(t, scene, "note.md")
	result := syncer.Pull(context.Background(), doc)

	require.Equal(t, gitsync.OutcomeSafeAborted, result.Outcome)
	require.Contains(t, result.Message, "conflicts detected when restoring stashed changes")
	require.Equal(t, output.SeverityError, result.Severity)
	require.ErrorIs(t, result.Err, helowriteerrors.ErrStashConflict)
	require.False(t, scene.Repo.RebaseInProgress())
	require.False(t, scene.Repo.MergeInProgress())

	// The conflicted content stays in the tree for manual resolution.
	markers, err := scene.Repo.HasConflictMarkers("note.md")
	require.NoError(t, err)
	require.True(t, markers)
}
