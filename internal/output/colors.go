package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// colorEnabled reports whether stdout is a terminal that should get ANSI colors.
func colorEnabled() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// StyleWarning colors text as a warning when stdout is a terminal.
func StyleWarning(text string) string {
	if !colorEnabled() {
		return text
	}
	return warningStyle.Render(text)
}

// StyleError colors text as an error when stdout is a terminal.
func StyleError(text string) string {
	if !colorEnabled() {
		return text
	}
	return errorStyle.Render(text)
}

// StyleSuccess colors text as a success when stdout is a terminal.
func StyleSuccess(text string) string {
	if !colorEnabled() {
		return text
	}
	return successStyle.Render(text)
}
