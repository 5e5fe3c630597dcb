// Package tui is the terminal editor shell. The model owns a textarea for
// the file being edited and drives saving, auto-save, the recent files
// overlay, and the git sync workflows, which run as commands so the event
// loop stays responsive.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"helowrite.dev/helowrite/internal/config"
	"helowrite.dev/helowrite/internal/gitsync"
	"helowrite.dev/helowrite/internal/output"
	"helowrite.dev/helowrite/internal/session"
)

type mode int

const (
	modeEdit mode = iota
	modeRecent
)

// syncResultMsg is delivered when a git sync workflow finishes.
type syncResultMsg struct {
	result gitsync.Result
}

// clearStatusMsg expires a status message. The token guards against a stale
// timer clearing a newer message.
type clearStatusMsg struct {
	token int
}

type autoSaveMsg time.Time

// fileOpenedMsg is delivered when the recent files overlay opens a file.
type fileOpenedMsg struct {
	doc     *session.Document
	content string
	err     error
}

// Model is the editor shell.
type Model struct {
	store  *config.Store
	syncer *gitsync.Syncer
	doc    *session.Document

	ta    textarea.Model
	keys  keyMap
	theme Theme
	help  help.Model

	width  int
	height int

	editorWidthPct  int
	topPadding      int
	distractionFree bool
	showWordCount   bool

	autoSaveEvery time.Duration

	syncing        bool
	statusMsg      string
	statusSeverity output.Severity
	statusToken    int

	mode         mode
	recentKeys   recentKeyMap
	recentFiles  []string
	recentCursor int

	quitting bool
}

// New creates the editor model for an open document. content is the
// document's on-disk content at open time. Opening records the file in the
// recent files list; config write failures are ignored.
func New(store *config.Store, syncer *gitsync.Syncer, doc *session.Document, content string) Model {
	theme := themeFor(store)

	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.Cursor.Style = lipgloss.NewStyle().Foreground(theme.CursorColor)
	ta.SetValue(content)
	ta.Focus()

	m := Model{
		store:           store,
		syncer:          syncer,
		doc:             doc,
		ta:              ta,
		keys:            defaultKeys,
		theme:           theme,
		help:            help.New(),
		editorWidthPct:  store.EditorWidth(),
		topPadding:      store.DistractionTopPadding(),
		distractionFree: store.DistractionFree(),
		showWordCount:   store.ShowWordCountDistractionFree(),
		recentKeys:      defaultRecentKeys,
	}

	if store.AutoSaveEnabled() {
		m.autoSaveEvery = time.Duration(store.AutoSaveInterval()) * time.Minute
	}

	// Restore the cursor when reopening the file the last session ended on.
	if store.LastFilePath() == doc.Path {
		line, col := store.LastCursorPosition()
		pos := session.ClampCursor(content, session.Position{Line: line, Col: col})
		m.moveCursorTo(pos)
	}

	_ = store.AddRecentFile(doc.Path)

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if m.autoSaveEvery > 0 {
		cmds = append(cmds, m.autoSaveTick())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case clearStatusMsg:
		if msg.token == m.statusToken {
			m.statusMsg = ""
		}
		return m, nil

	case autoSaveMsg:
		var cmd tea.Cmd
		if m.doc.UpdateDirty(m.ta.Value()) {
			cmd = m.save()
		}
		return m, tea.Batch(cmd, m.autoSaveTick())

	case syncResultMsg:
		m.syncing = false
		// Workers never touch the document; pulled content is applied
		// here, on the event loop.
		if msg.result.HasContent {
			m.doc.Cursor = m.cursor()
			if m.doc.ApplyReload(msg.result.Content) {
				m.ta.SetValue(m.doc.Snapshot())
				m.moveCursorTo(m.doc.Cursor)
			}
		}
		return m, m.showStatus(msg.result.Message, msg.result.Severity, msg.result.Timeout)

	case fileOpenedMsg:
		m.mode = modeEdit
		if msg.err != nil {
			return m, m.showStatus(fmt.Sprintf("Error: %v", msg.err), output.SeverityError, 10*time.Second)
		}
		m.doc = msg.doc
		m.ta.SetValue(msg.content)
		m.moveCursorTo(session.Position{})
		_ = m.store.AddRecentFile(msg.doc.Path)
		return m, m.showStatus(fmt.Sprintf("Opened %s", msg.doc.Name()), output.SeverityInfo, 2*time.Second)

	case tea.KeyMsg:
		if m.mode == modeRecent {
			return m.updateRecent(msg)
		}
		return m.updateEdit(msg)
	}

	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.persistState()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Save):
		return m, m.save()

	case key.Matches(msg, m.keys.Push):
		return m.startSync("push")

	case key.Matches(msg, m.keys.Pull):
		return m.startSync("pull")

	case key.Matches(msg, m.keys.Recent):
		files := m.store.RecentFiles()
		if len(files) == 0 {
			return m, m.showStatus("No recent files", output.SeverityInfo, 2*time.Second)
		}
		m.mode = modeRecent
		m.recentFiles = files
		m.recentCursor = 0
		return m, nil

	case key.Matches(msg, m.keys.Distraction):
		m.distractionFree = !m.distractionFree
		_ = m.store.SetDistractionFree(m.distractionFree)
		m.layout()
		return m, nil
	}

	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	m.doc.UpdateDirty(m.ta.Value())
	return m, cmd
}

func (m Model) updateRecent(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.recentKeys.Cancel):
		m.mode = modeEdit
		return m, nil

	case key.Matches(msg, m.recentKeys.Up):
		if m.recentCursor > 0 {
			m.recentCursor--
		}
		return m, nil

	case key.Matches(msg, m.recentKeys.Down):
		if m.recentCursor < len(m.recentFiles)-1 {
			m.recentCursor++
		}
		return m, nil

	case key.Matches(msg, m.recentKeys.Open):
		path := m.recentFiles[m.recentCursor]
		return m, func() tea.Msg {
			doc, content, err := session.Open(path)
			return fileOpenedMsg{doc: doc, content: content, err: err}
		}
	}
	return m, nil
}

// startSync saves the document and launches a git workflow in the background.
// A second trigger while one is running is refused.
func (m Model) startSync(operation string) (tea.Model, tea.Cmd) {
	if m.syncing {
		return m, m.showStatus("Git sync already in progress", output.SeverityWarning, 2*time.Second)
	}

	if err := m.doc.Save(m.ta.Value()); err != nil {
		return m, m.showStatus(fmt.Sprintf("Error: %v", err), output.SeverityError, 10*time.Second)
	}

	m.syncing = true
	syncer, doc := m.syncer, m.doc
	worker := func() tea.Msg {
		ctx := context.Background()
		if operation == "pull" {
			return syncResultMsg{result: syncer.Pull(ctx, doc)}
		}
		return syncResultMsg{result: syncer.Push(ctx, doc)}
	}

	status := m.showStatus(fmt.Sprintf("Git %s started...", operation), output.SeverityInfo, 10*time.Second)
	return m, tea.Batch(status, worker)
}

func (m *Model) save() tea.Cmd {
	if err := m.doc.Save(m.ta.Value()); err != nil {
		return m.showStatus(fmt.Sprintf("Error: %v", err), output.SeverityError, 10*time.Second)
	}
	return m.showStatus(fmt.Sprintf("Saved %s", m.doc.Name()), output.SeverityInfo, 2*time.Second)
}

// showStatus sets the message bar and schedules its expiry.
func (m *Model) showStatus(message string, severity output.Severity, timeout time.Duration) tea.Cmd {
	m.statusMsg = message
	m.statusSeverity = severity
	m.statusToken++
	token := m.statusToken
	return tea.Tick(timeout, func(time.Time) tea.Msg {
		return clearStatusMsg{token: token}
	})
}

func (m *Model) autoSaveTick() tea.Cmd {
	return tea.Tick(m.autoSaveEvery, func(t time.Time) tea.Msg {
		return autoSaveMsg(t)
	})
}

// persistState records the session for the next start. Failures are ignored;
// quitting must always succeed.
func (m *Model) persistState() {
	m.doc.Cursor = m.cursor()
	_ = m.store.SetLastFilePath(m.doc.Path)
	_ = m.store.SetLastCursorPosition(m.doc.Cursor.Line, m.doc.Cursor.Col)
}

func (m *Model) cursor() session.Position {
	return session.Position{Line: m.ta.Line(), Col: m.ta.LineInfo().ColumnOffset}
}

func (m *Model) moveCursorTo(pos session.Position) {
	for m.ta.Line() > 0 {
		m.ta.CursorUp()
	}
	m.ta.SetCursor(0)
	for i := 0; i < pos.Line && m.ta.Line() < m.ta.LineCount()-1; i++ {
		m.ta.CursorDown()
	}
	m.ta.SetCursor(pos.Col)
}

// layout sizes the textarea from the terminal size and the configured width
// percentage.
func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	editorWidth := m.width * m.editorWidthPct / 100
	if editorWidth < 20 {
		editorWidth = m.width
	}
	m.ta.SetWidth(editorWidth)

	chrome := 2 // message bar and status bar
	if m.distractionFree {
		chrome = m.topPadding
		if m.showWordCount {
			chrome++
		}
	}
	height := m.height - chrome
	if height < 1 {
		height = 1
	}
	m.ta.SetHeight(height)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.mode == modeRecent {
		return m.viewRecent()
	}

	var b strings.Builder

	if m.distractionFree && m.topPadding > 0 {
		b.WriteString(strings.Repeat("\n", m.topPadding))
	}

	b.WriteString(m.centered(m.ta.View()))
	b.WriteString("\n")

	if m.distractionFree {
		if m.showWordCount {
			b.WriteString(m.centered(m.theme.Dim.Render(fmt.Sprintf("%d words", session.WordCount(m.ta.Value())))))
		}
		return b.String()
	}

	b.WriteString(m.statusBar())
	b.WriteString("\n")
	b.WriteString(m.messageBar())

	return b.String()
}

func (m Model) viewRecent() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Recent Files"))
	b.WriteString("\n\n")

	for i, file := range m.recentFiles {
		cursor := "  "
		style := m.theme.Text
		if i == m.recentCursor {
			cursor = m.theme.Accent.Render("▸ ")
			style = m.theme.Accent
		}
		b.WriteString(fmt.Sprintf("%s%s\n", cursor, style.Render(file)))
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.recentKeys))
	return b.String()
}

func (m Model) statusBar() string {
	pos := m.cursor()
	dirty := ""
	if m.doc.Dirty {
		dirty = " ●"
	}
	left := fmt.Sprintf("%s%s  %d words  Ln %d, Col %d",
		m.doc.Name(), dirty, session.WordCount(m.ta.Value()), pos.Line+1, pos.Col+1)
	return m.theme.Status.Render(left) + "  " + m.help.View(m.keys)
}

func (m Model) messageBar() string {
	if m.statusMsg == "" {
		return ""
	}
	switch m.statusSeverity {
	case output.SeverityError:
		return m.theme.Error.Render(m.statusMsg)
	case output.SeverityWarning:
		return m.theme.Warning.Render(m.statusMsg)
	default:
		return m.theme.Info.Render(m.statusMsg)
	}
}

// centered centers content horizontally when the configured editor width
// leaves a margin.
func (m Model) centered(content string) string {
	if m.width == 0 {
		return content
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, content)
}

// Run opens the editor on a document and blocks until the user quits.
func Run(store *config.Store, syncer *gitsync.Syncer, doc *session.Document, content string) error {
	m := New(store, syncer, doc, content)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))
	_, err := p.Run()
	return err
}
