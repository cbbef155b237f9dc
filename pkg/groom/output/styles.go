package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color constants using the ANSI 256-color palette.
const (
	ColorPrimary = lipgloss.Color("39")
	ColorSuccess = lipgloss.Color("42")
	ColorWarning = lipgloss.Color("214")
	ColorDanger  = lipgloss.Color("196")
	ColorMuted   = lipgloss.Color("245")
)

var (
	// FooterBox frames the summary line under a report.
	FooterBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1).
			MarginTop(1)

	LabelStyle     = lipgloss.NewStyle().Foreground(ColorMuted)
	ValueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	SignatureStyle = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	LineStyle      = lipgloss.NewStyle().Foreground(ColorPrimary)
	PathStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Underline(true)
	SuccessStyle   = lipgloss.NewStyle().Foreground(ColorSuccess)
	WarningStyle   = lipgloss.NewStyle().Foreground(ColorWarning)
	ErrorStyle     = lipgloss.NewStyle().Foreground(ColorDanger)
	MutedStyle     = lipgloss.NewStyle().Foreground(ColorMuted)
)

// DisableColor strips colors and text attributes from all styled output.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// ConfigureColor disables color when noColor is set or the NO_COLOR
// environment variable is present.
func ConfigureColor(noColor bool) {
	if noColor || termenv.EnvNoColor() {
		DisableColor()
	}
}
