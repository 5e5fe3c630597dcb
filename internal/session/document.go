// Package session models the state of the document being edited: its path,
// the last saved snapshot, the dirty flag, and the cursor. The editor shell
// owns a Document and passes it into the git sync workflows instead of
// keeping ambient globals.
package session

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Position is a zero-based (line, column) cursor location.
type Position struct {
	Line int
	Col  int
}

// Document tracks the file currently open in the editor. It is not safe for
// concurrent use: all mutation belongs on the goroutine driving the editor.
// Background workers may read Path, which never changes after Open.
type Document struct {
	// Path is the absolute path of the file, empty for an unsaved buffer.
	Path string

	// Cursor is the last known cursor location.
	Cursor Position

	// Dirty reports whether the buffer differs from the saved snapshot.
	Dirty bool

	// snapshot is the content as of the last load or save.
	snapshot string
}

// New creates a Document for path without touching the disk.
func New(path string) *Document {
	return &Document{Path: path}
}

// Open creates a Document and loads its content from disk. A missing file is
// not an error; the document starts empty, to be created on first save.
func Open(path string) (*Document, string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", err
	}
	doc := New(abs)

	data, err := os.ReadFile(abs)
	if os.IsNotExist(err) {
		return doc, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	doc.snapshot = string(data)
	return doc, doc.snapshot, nil
}

// Dir returns the directory containing the file.
func (d *Document) Dir() string {
	return filepath.Dir(d.Path)
}

// Name returns the file name without its directory.
func (d *Document) Name() string {
	return filepath.Base(d.Path)
}

// Snapshot returns the content as of the last load or save.
func (d *Document) Snapshot() string {
	return d.snapshot
}

// UpdateDirty recomputes the dirty flag from the live buffer content and
// reports it.
func (d *Document) UpdateDirty(live string) bool {
	d.Dirty = live != d.snapshot
	return d.Dirty
}

// Save writes the live buffer content to disk and resets the snapshot and
// dirty flag.
func (d *Document) Save(content string) error {
	if err := os.WriteFile(d.Path, []byte(content), 0o644); err != nil {
		return err
	}
	d.snapshot = content
	d.Dirty = false
	return nil
}

// ApplyReload replaces the snapshot with content that was read from disk.
// When it differs from the current snapshot the cursor is clamped to the new
// bounds, the dirty flag is cleared, and changed is true. Like every Document
// method, this must be called from the goroutine that owns the document.
func (d *Document) ApplyReload(content string) (changed bool) {
	if content == d.snapshot {
		return false
	}
	d.snapshot = content
	d.Cursor = ClampCursor(content, d.Cursor)
	d.Dirty = false
	return true
}

// ClampCursor bounds pos to valid coordinates within content: the line to
// [0, lineCount-1] and the column to [0, length of that line] in runes.
func ClampCursor(content string, pos Position) Position {
	lines := strings.Split(content, "\n")

	line := pos.Line
	if line > len(lines)-1 {
		line = len(lines) - 1
	}
	if line < 0 {
		line = 0
	}

	col := pos.Col
	if max := utf8.RuneCountInString(lines[line]); col > max {
		col = max
	}
	if col < 0 {
		col = 0
	}

	return Position{Line: line, Col: col}
}

// WordCount returns the number of whitespace-separated words in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
