// Package tui provides the interactive prompts and progress display used
// when groom runs without a subcommand in a terminal. It uses Bubble Tea,
// Bubbles and Lip Gloss.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("#7D56F4")
	accentColor  = lipgloss.Color("#00D9FF")
	successColor = lipgloss.Color("#28A745")
	dangerColor  = lipgloss.Color("#DC3545")
	mutedColor   = lipgloss.Color("#666666")
)

var (
	questionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	keyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	mutedTextStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	successTextStyle = lipgloss.NewStyle().
				Foreground(successColor)

	errorTextStyle = lipgloss.NewStyle().
			Foreground(dangerColor)
)
