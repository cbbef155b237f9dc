package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// InputModel reads one line of text. Enter submits, Esc and Ctrl+C cancel.
type InputModel struct {
	prompt    string
	input     textinput.Model
	submitted bool
	cancelled bool
}

// NewInputModel creates a focused single-line input.
func NewInputModel(prompt, placeholder string) InputModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	ti.CharLimit = 1024
	ti.Width = 60
	ti.Focus()

	return InputModel{prompt: prompt, input: ti}
}

// Init implements tea.Model.
func (m InputModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m InputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.submitted = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m InputModel) View() string {
	if m.submitted || m.cancelled {
		return ""
	}
	return questionStyle.Render(m.prompt) + "\n" + m.input.View() + "\n" +
		mutedTextStyle.Render("  enter to confirm, esc to cancel") + "\n"
}

// Value returns the entered text and whether it was submitted.
func (m InputModel) Value() (string, bool) {
	return m.input.Value(), m.submitted
}
