package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

const (
	ColorAccent    = "86"
	ColorHighlight = "205"
	ColorDanger    = "196"
	ColorSuccess   = "42"
	ColorMuted     = "241"
	ColorText      = "252"
)

// Styles contains shared style definitions used across views.
var Styles = struct {
	Title    lipgloss.Style
	Box      lipgloss.Style
	Label    lipgloss.Style
	Selected lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Empty    lipgloss.Style
	Button   lipgloss.Style
	Busy     lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1),
	Label: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Selected: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
	Button: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color(ColorAccent)).
		Padding(0, 1),
	Busy: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Padding(0, 1),
	Success: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSuccess)).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color(ColorSuccess)).
		PaddingLeft(1),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color(ColorDanger)).
		PaddingLeft(1),
}

func newSpinner() spinner.Model {
	return spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent))),
	)
}
