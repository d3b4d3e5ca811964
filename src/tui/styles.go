package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Dracula colors
var (
	foreground = lipgloss.Color("#f8f8f2")
	selection  = lipgloss.Color("#44475a")
	comment    = lipgloss.Color("#6272a4")
	cyan       = lipgloss.Color("#8be9fd")
	green      = lipgloss.Color("#50fa7b")
	purple     = lipgloss.Color("#bd93f9")
	red        = lipgloss.Color("#ff5555")
	yellow     = lipgloss.Color("#f1fa8c")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(purple).
			Bold(true).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(foreground)

	selectedStyle = lipgloss.NewStyle().
			Foreground(foreground).
			Background(selection).
			Bold(true)

	priceStyle = lipgloss.NewStyle().
			Foreground(green)

	formStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(comment).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(cyan)

	helpStyle = lipgloss.NewStyle().
			Foreground(comment)

	statusStyle = lipgloss.NewStyle().
			Foreground(yellow)

	errorStyle = lipgloss.NewStyle().
			Foreground(red)
)

// maxRule caps the separator width on wide terminals
const maxRule = 60

// ListingStyle renders catalog listings with the TUI palette.
// Width is the terminal width used for separators.
type ListingStyle struct {
	Width int
}

func (ListingStyle) Title(s string) string { return titleStyle.UnsetPadding().Render(s) }
func (ListingStyle) Muted(s string) string { return helpStyle.Render(s) }

func (l ListingStyle) Rule(s string) string {
	width := min(max(l.Width, lipgloss.Width(s)), maxRule)
	return helpStyle.Render(strings.Repeat("─", width))
}
