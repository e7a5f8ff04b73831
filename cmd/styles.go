package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
const (
	ColorSuccess = lipgloss.Color("#10B981")
	ColorError   = lipgloss.Color("#EF4444")
	ColorWarning = lipgloss.Color("#F59E0B")
	ColorMuted   = lipgloss.Color("#6B7280")
	ColorAccent  = lipgloss.Color("#3B82F6")
)

var (
	// StatusStyle renders the right-aligned verb of a status line
	StatusStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	WarningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWarning)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)
)

// statusWidth is the column the verb of a status line is right-aligned to
const statusWidth = 12

// printStatus writes a line such as "   Compiling demo v0.1.0 (java 21)"
func printStatus(w io.Writer, verb, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", StatusStyle.Render(fmt.Sprintf("%*s", statusWidth, verb)), fmt.Sprintf(format, args...))
}

// printWarning writes a status line with a warning-coloured verb
func printWarning(w io.Writer, verb, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", WarningStyle.Render(fmt.Sprintf("%*s", statusWidth, verb)), fmt.Sprintf(format, args...))
}
