package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClampCursor(t *testing.T) {
	t.Parallel()

	content := "alpha\nbravo\ncharlie\ndelta"

	t.Run("in-bounds position is unchanged", func(t *testing.T) {
		t.Parallel()
		pos := ClampCursor(content, Position{Line: 1, Col: 3})
		require.Equal(t, Position{Line: 1, Col: 3}, pos)
	})

	t.Run("line past the end clamps to the last line", func(t *testing.T) {
		t.Parallel()
		// 10-line document shrank to 4 lines; cursor was at (5, 3).
		pos := ClampCursor(content, Position{Line: 5, Col: 3})
		require.Equal(t, Position{Line: 3, Col: 3}, pos)
	})

	t.Run("column clamps to the clamped line length", func(t *testing.T) {
		t.Parallel()
		pos := ClampCursor(content, Position{Line: 9, Col: 100})
		require.Equal(t, Position{Line: 3, Col: len("delta")}, pos)
	})

	t.Run("negative coordinates clamp to zero", func(t *testing.T) {
		t.Parallel()
		pos := ClampCursor(content, Position{Line: -2, Col: -7})
		require.Equal(t, Position{Line: 0, Col: 0}, pos)
	})

	t.Run("empty content pins to origin", func(t *testing.T) {
		t.Parallel()
		pos := ClampCursor("", Position{Line: 4, Col: 4})
		require.Equal(t, Position{Line: 0, Col: 0}, pos)
	})
}

func TestDocumentApplyReload(t *testing.T) {
	t.Parallel()

	t.Run("unchanged content reports no change", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "note.md")
		require.NoError(t, os.WriteFile(path, []byte("same\ncontent\n"), 0o644))

		doc, content, err := Open(path)
		require.NoError(t, err)
		require.Equal(t, "same\ncontent\n", content)
		require.False(t, doc.ApplyReload("same\ncontent\n"))
	})

	t.Run("changed content clamps the cursor and clears dirty", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "note.md")
		original := "1\n2\n3\n4\n5\n6\n7\n8\n9\n10"
		require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

		doc, _, err := Open(path)
		require.NoError(t, err)
		doc.Cursor = Position{Line: 5, Col: 3}
		doc.Dirty = true

		shrunk := "one\ntwo\nthree\nfour"
		require.True(t, doc.ApplyReload(shrunk))
		require.Equal(t, Position{Line: 3, Col: 3}, doc.Cursor)
		require.False(t, doc.Dirty)
		require.Equal(t, shrunk, doc.Snapshot())
	})
}

func TestDocumentSave(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "note.md")

	doc := New(path)
	doc.UpdateDirty("draft")
	require.True(t, doc.Dirty)

	require.NoError(t, doc.Save("draft"))
	require.False(t, doc.Dirty)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "draft", string(data))

	doc.UpdateDirty("draft")
	require.False(t, doc.Dirty)
}

func TestWordCount(t *testing.T) {
	t.Parallel()
	require.Equal(t, 0, WordCount(""))
	require.Equal(t, 0, WordCount("   \n\t"))
	require.Equal(t, 3, WordCount("one two three"))
	require.Equal(t, 4, WordCount("split\nacross\n\nseveral lines"))
}
