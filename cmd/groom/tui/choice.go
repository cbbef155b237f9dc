package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Choice is one answer to a single-key question.
type Choice struct {
	Key   string
	Label string
}

// ChoiceModel asks a question answered by a single key press. A key that
// matches no choice, Esc or Ctrl+C ends the prompt without a selection.
type ChoiceModel struct {
	question string
	choices  []Choice
	selected string
	done     bool
}

// NewChoiceModel creates a question with the given answers.
func NewChoiceModel(question string, choices []Choice) ChoiceModel {
	return ChoiceModel{question: question, choices: choices}
}

// Init implements tea.Model.
func (m ChoiceModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ChoiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	m.done = true
	if key.Type == tea.KeyRunes {
		pressed := strings.ToUpper(string(key.Runes))
		for _, c := range m.choices {
			if strings.ToUpper(c.Key) == pressed {
				m.selected = c.Key
				break
			}
		}
	}
	return m, tea.Quit
}

// View implements tea.Model.
func (m ChoiceModel) View() string {
	if m.done {
		if m.selected == "" {
			return m.question + " " + mutedTextStyle.Render("skipped") + "\n"
		}
		return m.question + " " + successTextStyle.Render(m.selected) + "\n"
	}

	var b strings.Builder
	b.WriteString(questionStyle.Render(m.question))
	b.WriteString("\n")
	for _, c := range m.choices {
		fmt.Fprintf(&b, "  %s  %s\n", keyStyle.Render(strings.ToUpper(c.Key)), c.Label)
	}
	b.WriteString(mutedTextStyle.Render("  any other key skips"))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the chosen key, or "" when the prompt was skipped.
func (m ChoiceModel) Selected() string {
	return m.selected
}
