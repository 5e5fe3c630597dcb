package tui

import (
	"github.com/charmbracelet/lipgloss"

	"helowrite.dev/helowrite/internal/config"
)

// Theme holds the styles the editor shell renders with. Themes are looked up
// by the name stored in config; an unknown name falls back to the dark theme.
type Theme struct {
	Name string

	Text    lipgloss.Style
	Dim     lipgloss.Style
	Accent  lipgloss.Style
	Title   lipgloss.Style
	Status  lipgloss.Style
	Info    lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	CursorColor lipgloss.Color
}

func darkTheme() Theme {
	return Theme{
		Name:        "helowrite-dark",
		Text:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Dim:         lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Info:        lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Warning:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		CursorColor: lipgloss.Color("39"),
	}
}

func lightTheme() Theme {
	return Theme{
		Name:        "helowrite-light",
		Text:        lipgloss.NewStyle().Foreground(lipgloss.Color("235")),
		Dim:         lipgloss.NewStyle().Foreground(lipgloss.Color("248")),
		Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("26")),
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("26")),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		Info:        lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		Warning:     lipgloss.NewStyle().Foreground(lipgloss.Color("166")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("124")),
		CursorColor: lipgloss.Color("26"),
	}
}

// themeFor builds the theme from the stored settings, resolving the cursor
// color. The cursor color "theme" means the theme's accent color.
func themeFor(store *config.Store) Theme {
	var theme Theme
	switch store.Theme() {
	case "helowrite-light":
		theme = lightTheme()
	default:
		theme = darkTheme()
	}

	if c := store.CursorColor(); c != "" && c != "theme" {
		theme.CursorColor = lipgloss.Color(c)
	}
	return theme
}
