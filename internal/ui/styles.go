// Package ui provides terminal output for the CLI: lipgloss-styled
// text, a spinner, plain-text tables, and the interactive schema
// browser built on tview.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Theme is the single source of truth for CLI text styling.
type Theme struct {
	Primary lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Dim     lipgloss.Style
	Header  lipgloss.Style
	Done    lipgloss.Style
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary: lipgloss.NewStyle().Foreground(lipgloss.Color("12")), // Blue
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")), // Green
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),  // Red
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")), // Yellow
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")), // Cyan
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),  // Gray
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Done:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	}
}

// PlainTheme returns a theme with no styling, for pipes and CI.
func PlainTheme() *Theme {
	plain := lipgloss.NewStyle()
	return &Theme{
		Primary: plain, Success: plain, Error: plain, Warning: plain,
		Info: plain, Dim: plain, Header: plain, Done: plain,
	}
}

var theme = autoTheme()

// autoTheme picks the default theme on interactive terminals and the
// plain theme for pipes, NO_COLOR (https://no-color.org/), and dumb
// terminals.
func autoTheme() *Theme {
	if !IsTTY() || os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return PlainTheme()
	}
	return DefaultTheme()
}

// IsTTY reports whether stdout is an interactive terminal.
func IsTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// SetTheme changes the global theme. Tests use this to force styling
// on or off regardless of the environment.
func SetTheme(t *Theme) {
	theme = t
}

// GetTheme returns the current global theme.
func GetTheme() *Theme {
	return theme
}

// Primary renders text in the primary color.
func Primary(text string) string {
	return theme.Primary.Render(text)
}

// Success renders text in the success color.
func Success(text string) string {
	return theme.Success.Render(text)
}

// Error renders text in the error color.
func Error(text string) string {
	return theme.Error.Render(text)
}

// Warning renders text in the warning color.
func Warning(text string) string {
	return theme.Warning.Render(text)
}

// Info renders text in the info color.
func Info(text string) string {
	return theme.Info.Render(text)
}

// Dim renders text in a dimmed color.
func Dim(text string) string {
	return theme.Dim.Render(text)
}

// Header renders text as a header (bold primary).
func Header(text string) string {
	return theme.Header.Render(text)
}

// Done renders text with a success checkmark.
func Done(text string) string {
	return theme.Done.Render("✓ " + text)
}

// Failed renders text with an error cross.
func Failed(text string) string {
	return theme.Error.Render("✗ " + text)
}
