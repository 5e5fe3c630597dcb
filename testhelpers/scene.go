// Package testhelpers provides scaffolding for tests that need real git
// repositories on disk.
package testhelpers

import (
	"os"
	"path/filepath"
	"testing"
)

// Scene is a test scene with a temporary directory holding a Git repository.
type Scene struct {
	Dir  string
	Repo *GitRepo
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewScene creates a new test scene with a temporary directory and Git
// repository. Cleanup is registered with t.Cleanup(); set DEBUG to keep the
// directory around after a failing test.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "helowrite-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	repo, err := NewGitRepo(tmpDir)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("Failed to create Git repo: %v", err)
	}

	scene := &Scene{
		Dir:  tmpDir,
		Repo: repo,
	}

	if setup != nil {
		if err := setup(scene); err != nil {
			os.RemoveAll(tmpDir)
			t.Fatalf("Setup failed: %v", err)
		}
	}

	t.Cleanup(func() {
		if os.Getenv("DEBUG") != "" {
			return
		}
		os.RemoveAll(tmpDir)
		// Bare remotes and clones are created as sibling directories.
		if siblings, err := filepath.Glob(tmpDir + "-*"); err == nil {
			for _, s := range siblings {
				os.RemoveAll(s)
			}
		}
	})

	return scene
}

// BasicSceneSetup creates a scene with a single committed note file.
func BasicSceneSetup(scene *Scene) error {
	return scene.Repo.CommitFile("note.md", "hello world\n", "initial commit")
}
