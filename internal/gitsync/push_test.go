package gitsync_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	helowriteerrors "helowrite.dev/helowrite/internal/errors"
	"helowrite.dev/helowrite/internal/gitsync"
	"helowrite.dev/helowrite/internal/output"
	"helowrite.dev/helowrite/internal/session"
	"helowrite.dev/helowrite/testhelpers"
)

func newSyncer(scene *testhelpers.Scene) (*gitsync.Syncer, string) {
	logPath := filepath.Join(scene.Dir+"-logs", gitsync.LogFileName)
	return gitsync.NewSyncer(logPath), logPath
}

func openDoc(t *testing.T, scene *testhelpers.Scene, name string) *session.Document {
	t.Helper()
	doc, _, err := session.Open(filepath.Join(scene.Dir, name))
	require.NoError(t, err)
	return doc
}

func TestPushNothingToCommit(t *testing.T) {
	t.Parallel()
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	syncer, logPath := newSyncer(scene)
	doc := openDoc(t, scene, "note.md")

	// No remote is configured; if the push stage ran it would fail. A clean
	// tree must terminate at the commit stage instead.
	result := syncer.Push(context.Background(), doc)

	require.Equal(t, gitsync.OutcomeNoOp, result.Outcome)
	require.Equal(t, "No changes to commit", result.Message)
	require.Equal(t, output.SeverityInfo, result.Severity)

	_, err := os.Stat(logPath)
	require.True(t, os.IsNotExist(err), "expected no diagnostic log for a no-op push")
}

func TestPushCommitsAndPushesTheFile(t *testing.T) {
	t.Parallel()
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	_, err := scene.Repo.CreateBareRemote("origin")
	require.NoError(t, err)
	require.NoError(t, scene.Repo.PushBranch("origin", "main"))

	// Unsaved-then-saved edit sitting in the working tree.
	require.NoError(t, scene.Repo.WriteFile("note.md", "hello world\nedited\n"))

	syncer, _ := newSyncer(scene)
	doc := openDoc(t, scene, "note.md")
	result := syncer.Push(context.Background(), doc)

	require.Equal(t, gitsync.OutcomeSuccess, result.Outcome)
	require.Contains(t, result.Message, "Git push completed for note.md")

	message, err := scene.Repo.LastCommitMessage()
	require.NoError(t, err)
	require.Equal(t, "Update note.md", message)

	localSHA, err := scene.Repo.GetRevision("main")
	require.NoError(t, err)
	remoteSHA, err := scene.Repo.GetRevision("origin/main")
	require.NoError(t, err)
	require.Equal(t, localSHA, remoteSHA)
}

func TestPushStagesOnlyTheTargetFile(t *testing.T) {
	t.Parallel()
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	_, err := scene.Repo.CreateBareRemote("origin")
	require.NoError(t, err)
	require.NoError(t, scene.Repo.PushBranch("origin", "main"))

	require.NoError(t, scene.Repo.CommitFile("other.md", "other\n", "add other"))
	require.NoError(t, scene.Repo.WriteFile("note.md", "note edit\n"))
	require.NoError(t, scene.Repo.WriteFile("other.md", "other edit\n"))

	syncer, _ := newSyncer(scene)
	doc := openDoc(t, scene, "note.md")
	result := syncer.Push(context.Background(), doc)
	require.Equal(t, gitsync.OutcomeSuccess, result.Outcome)

	// The unrelated file stays uncommitted in the working tree.
	content, err := scene.Repo.ReadFile("other.md")
	require.NoError(t, err)
	require.Equal(t, "other edit\n", content)

	out, err := scene.Repo.RunGitCommandAndGetOutput("show", "--stat", "--format=", "HEAD")
	require.NoError(t, err)
	require.Contains(t, out, "note.md")
	require.NotContains(t, out, "other.md")
}

func TestPushStashPopConflictSafeAborts(t *testing.T) {
	t.Parallel()
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

	// Leave a stash entry that can no longer apply cleanly: stash an edit,
	// then commit a different edit to the same line.
	require.NoError(t, scene.Repo.WriteFile("note.md", "stashed version\n"))
	require.NoError(t, scene.Repo.StashPush("older edit"))
	require.NoError(t, scene.Repo.CommitFile("note.md", "committed version\n", "diverge"))

	syncer, _ := newSyncer(scene)
	doc := openDoc(t, scene, "note.md")
	result := syncer.Push(context.Background(), doc)

	require.Equal(t, gitsync.OutcomeSafeAborted, result.Outcome)
	require.Contains(t, result.Message, "conflicts detected when restoring stashed changes")
	require.Equal(t, output.SeverityError, result.Severity)
	require.ErrorIs(t, result.Err, helowriteerrors.ErrStashConflict)

	// Best-effort aborts must leave no rebase or merge in progress.
	require.False(t, scene.Repo.RebaseInProgress())
	require.False(t, scene.Repo.MergeInProgress())

	// The conflicted content stays in the tree for manual resolution.
	markers, err := scene.Repo.HasConflictMarkers("note.md")
	require.NoError(t, err)
	require.True(t, markers)
}

func TestPushRemoteAheadAdvisesPullFirst(t *testing.T) {
	t.Parallel()
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	bareDir, err := scene.Repo.CreateBareRemote("origin")
	require.NoError(t, err)
	require.NoError(t, scene.Repo.PushBranch("origin", "main"))

	// Someone else pushes first.
	other, err := testhelpers.CloneGitRepo(scene.Dir+"-other", bareDir)
	require.NoError(t, err)
	require.NoError(t, other.CommitFile("note.md", "remote version\n", "remote edit"))
	require.NoError(t, other.PushBranch("origin", "main"))

	require.NoError(t, scene.Repo.WriteFile("note.md", "local version\n"))

	syncer, logPath := newSyncer(scene)
	doc := openDoc(t, scene, "note.md")
	result := syncer.Push(context.Background(), doc)

	require.Equal(t, gitsync.OutcomeAborted, result.Outcome)
	require.Contains(t, result.Message, "remote has changes you don't have")
	require.Equal(t, output.SeverityError, result.Severity)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "Command 'git push' failed:")
}

func TestPushFailureLogIsAppendOnly(t *testing.T) {
	t.Parallel()
	scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
	syncer, logPath := newSyncer(scene)
	doc := openDoc(t, scene, "note.md")

	// No remote at all: the push stage fails once there is a commit to push.
	require.NoError(t, scene.Repo.WriteFile("note.md", "first edit\n"))
	first := syncer.Push(context.Background(), doc)
	require.Equal(t, gitsync.OutcomeAborted, first.Outcome)

	require.NoError(t, scene.Repo.WriteFile("note.md", "second edit\n"))
	second := syncer.Push(context.Background(), doc)
	require.Equal(t, gitsync.OutcomeAborted, second.Outcome)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Equal(t, 2, countOccurrences(string(data), "failed:"), "log must accumulate, not truncate")
}

func countOccurrences(s, substr string) int {
	count := 0
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			count++
		}
	}
	return count
}
