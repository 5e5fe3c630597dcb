// Package config provides persistent editor settings backed by a flat
// key=value file. Every read loads the file fresh and every setter rewrites
// it via read-all, mutate-one, write-all, so unknown keys written by other
// versions round-trip untouched.
//
// Values containing newlines, or keys containing '=', are unsupported by the
// format. There is no escaping; this is a documented limitation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	helowriteerrors "helowrite.dev/helowrite/internal/errors"
)

// EnvConfigDir overrides the config directory when set.
const EnvConfigDir = "HELOWRITE_CONFIG_DIR"

const (
	configFileName = "config.conf"

	// DefaultTheme is used when no theme has been saved
	DefaultTheme = "helowrite-dark"
	// DefaultEditorWidth is the editor width percentage used when unset
	DefaultEditorWidth = 70
	// DefaultAutoSaveInterval is the auto-save interval in minutes used when unset
	DefaultAutoSaveInterval = 5
	// DefaultDistractionTopPadding is the distraction-free top padding used when unset
	DefaultDistractionTopPadding = 2

	// MaxRecentFiles is the maximum length of the recent files list
	MaxRecentFiles = 5
)

// Store reads and writes editor settings. It holds no cached state; each
// accessor goes to disk so concurrent editor instances observe each other's
// writes (last writer wins).
type Store struct {
	dir  string
	file string
}

// NewStore creates a Store using the default config directory: the
// HELOWRITE_CONFIG_DIR environment variable if set, otherwise
// os.UserConfigDir()/helowrite.
func NewStore() *Store {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return NewStoreAt(dir)
	}
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return NewStoreAt(filepath.Join(base, "helowrite"))
}

// NewStoreAt creates a Store rooted at a specific directory.
func NewStoreAt(dir string) *Store {
	return &Store{
		dir:  dir,
		file: filepath.Join(dir, configFileName),
	}
}

// Dir returns the config directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the config file path.
func (s *Store) Path() string {
	return s.file
}

// load reads the config file into an ordered key/value mapping. A missing or
// unreadable file yields an empty mapping; settings problems must never take
// the editor down. Lines without '=' are ignored.
func (s *Store) load() *settings {
	cfg := newSettings()
	data, err := os.ReadFile(s.file)
	if err != nil {
		return cfg
	}
	for _, line := range strings.Split(string(data), "\n") {
		if !strings.Contains(line, "=") {
			continue
		}
		key, value, _ := strings.Cut(line, "=")
		cfg.set(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	return cfg
}

// save writes the mapping back as key=value lines in insertion order. The
// config directory is created first so a fresh install works.
func (s *Store) save(cfg *settings) error {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	var b strings.Builder
	for _, key := range cfg.keys {
		b.WriteString(key)
		b.WriteString("=")
		b.WriteString(cfg.values[key])
		b.WriteString("\n")
	}
	if err := os.WriteFile(s.file, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// setKey performs the read-all, mutate-one, write-all cycle for a single key.
func (s *Store) setKey(key, value string) error {
	cfg := s.load()
	cfg.set(key, value)
	return s.save(cfg)
}

func (s *Store) getKey(key, fallback string) string {
	if v, ok := s.load().get(key); ok {
		return v
	}
	return fallback
}

func (s *Store) getBool(key string, fallback bool) bool {
	v, ok := s.load().get(key)
	if !ok {
		return fallback
	}
	return v == "1"
}

func (s *Store) getInt(key string, fallback int) int {
	v, ok := s.load().get(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func (s *Store) setBool(key string, enabled bool) error {
	if enabled {
		return s.setKey(key, "1")
	}
	return s.setKey(key, "0")
}

// Theme returns the saved theme, defaulting to "helowrite-dark".
func (s *Store) Theme() string {
	return s.getKey("theme", DefaultTheme)
}

// SetTheme saves the theme.
func (s *Store) SetTheme(theme string) error {
	return s.setKey("theme", theme)
}

// EditorWidth returns the editor width percentage, defaulting to 70.
func (s *Store) EditorWidth() int {
	return s.getInt("editor_width", DefaultEditorWidth)
}

// SetEditorWidth saves the editor width percentage.
func (s *Store) SetEditorWidth(width int) error {
	return s.setKey("editor_width", strconv.Itoa(width))
}

// BottomPadding returns the editor bottom padding, defaulting to 0.
func (s *Store) BottomPadding() int {
	return s.getInt("bottom_padding", 0)
}

// SetBottomPadding saves the editor bottom padding.
func (s *Store) SetBottomPadding(padding int) error {
	return s.setKey("bottom_padding", strconv.Itoa(padding))
}

// DistractionTopPadding returns the distraction-free top padding, defaulting to 2.
func (s *Store) DistractionTopPadding() int {
	return s.getInt("distraction_top_padding", DefaultDistractionTopPadding)
}

// SetDistractionTopPadding saves the distraction-free top padding.
func (s *Store) SetDistractionTopPadding(padding int) error {
	return s.setKey("distraction_top_padding", strconv.Itoa(padding))
}

// CursorColor returns the cursor color, defaulting to "theme" which means
// the theme's primary color.
func (s *Store) CursorColor() string {
	return s.getKey("cursor_color", "theme")
}

// SetCursorColor saves the cursor color.
func (s *Store) SetCursorColor(color string) error {
	return s.setKey("cursor_color", color)
}

// AutoSaveEnabled returns whether auto-save is enabled.
func (s *Store) AutoSaveEnabled() bool {
	return s.getBool("auto_save_enabled", false)
}

// SetAutoSaveEnabled persists the auto-save preference.
func (s *Store) SetAutoSaveEnabled(enabled bool) error {
	return s.setBool("auto_save_enabled", enabled)
}

// AutoSaveInterval returns the auto-save interval in minutes, defaulting to 5.
func (s *Store) AutoSaveInterval() int {
	return s.getInt("auto_save_interval", DefaultAutoSaveInterval)
}

// SetAutoSaveInterval saves the auto-save interval in minutes.
func (s *Store) SetAutoSaveInterval(minutes int) error {
	return s.setKey("auto_save_interval", strconv.Itoa(minutes))
}

// ScrollbarEnabled returns whether the scrollbar is shown.
func (s *Store) ScrollbarEnabled() bool {
	return s.getBool("scrollbar_enabled", false)
}

// SetScrollbarEnabled persists the scrollbar preference.
func (s *Store) SetScrollbarEnabled(enabled bool) error {
	return s.setBool("scrollbar_enabled", enabled)
}

// DistractionFree returns whether distraction-free mode starts enabled.
func (s *Store) DistractionFree() bool {
	return s.getBool("distraction_free", false)
}

// SetDistractionFree persists the distraction-free preference.
func (s *Store) SetDistractionFree(enabled bool) error {
	return s.setBool("distraction_free", enabled)
}

// ShowWordCountDistractionFree returns whether the word count is shown in
// distraction-free mode. Defaults to true.
func (s *Store) ShowWordCountDistractionFree() bool {
	return s.getBool("show_word_count_distraction_free", true)
}

// SetShowWordCountDistractionFree persists the distraction-free word count preference.
func (s *Store) SetShowWordCountDistractionFree(enabled bool) error {
	return s.setBool("show_word_count_distraction_free", enabled)
}

// SpaceBetweenParagraphs returns whether an empty line is kept between paragraphs.
func (s *Store) SpaceBetweenParagraphs() bool {
	return s.getBool("space_between_paragraphs", false)
}

// SetSpaceBetweenParagraphs persists the paragraph spacing preference.
func (s *Store) SetSpaceBetweenParagraphs(enabled bool) error {
	return s.setBool("space_between_paragraphs", enabled)
}

// OpenLastFile returns whether the last file should be reopened on startup.
func (s *Store) OpenLastFile() bool {
	return s.getBool("open_last_file", false)
}

// SetOpenLastFile persists the open-last-file preference.
func (s *Store) SetOpenLastFile(enabled bool) error {
	return s.setBool("open_last_file", enabled)
}

// LastFilePath returns the last opened file path, empty when none.
func (s *Store) LastFilePath() string {
	return s.getKey("last_file_path", "")
}

// SetLastFilePath saves the last opened file path.
func (s *Store) SetLastFilePath(path string) error {
	return s.setKey("last_file_path", path)
}

// LastCursorPosition returns the saved cursor position as (line, column).
// Malformed values fall back to (0, 0).
func (s *Store) LastCursorPosition() (line, col int) {
	v := s.getKey("last_cursor_position", "0,0")
	lineStr, colStr, ok := strings.Cut(v, ",")
	if !ok {
		return 0, 0
	}
	line, err := strconv.Atoi(strings.TrimSpace(lineStr))
	if err != nil {
		return 0, 0
	}
	col, err = strconv.Atoi(strings.TrimSpace(colStr))
	if err != nil {
		return 0, 0
	}
	if line < 0 || col < 0 {
		return 0, 0
	}
	return line, col
}

// SetLastCursorPosition saves the cursor position.
func (s *Store) SetLastCursorPosition(line, col int) error {
	return s.setKey("last_cursor_position", fmt.Sprintf("%d,%d", line, col))
}

// RecentFiles returns the recent files list, most recent first.
func (s *Store) RecentFiles() []string {
	v := s.getKey("recent_files", "")
	if v == "" {
		return nil
	}
	var files []string
	for _, f := range strings.Split(v, "|") {
		if f != "" {
			files = append(files, f)
		}
	}
	return files
}

// AddRecentFile inserts path at the front of the recent files list, removing
// any previous occurrence and truncating the list to MaxRecentFiles.
func (s *Store) AddRecentFile(path string) error {
	recent := s.RecentFiles()

	files := make([]string, 0, len(recent)+1)
	files = append(files, path)
	for _, f := range recent {
		if f != path {
			files = append(files, f)
		}
	}
	if len(files) > MaxRecentFiles {
		files = files[:MaxRecentFiles]
	}

	return s.setKey("recent_files", strings.Join(files, "|"))
}

// ObsidianVaultPath returns the configured Obsidian vault path, empty when none.
func (s *Store) ObsidianVaultPath() string {
	return s.getKey("obsidian_vault_path", "")
}

// SetObsidianVaultPath saves the Obsidian vault path. A non-empty path must
// be an existing directory.
func (s *Store) SetObsidianVaultPath(path string) error {
	if path != "" {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			return helowriteerrors.ErrVaultPath
		}
	}
	return s.setKey("obsidian_vault_path", path)
}

// settings is an ordered string mapping. Insertion order is preserved so the
// file round-trips in a stable order.
type settings struct {
	keys   []string
	values map[string]string
}

func newSettings() *settings {
	return &settings{values: make(map[string]string)}
}

func (c *settings) get(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

func (c *settings) set(key, value string) {
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = value
}
