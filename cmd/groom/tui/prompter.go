package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Prompter abstracts interactive prompts for testability.
type Prompter interface {
	// Choose asks a single-key question and returns the selected key, or ""
	// when the user skipped it.
	Choose(question string, choices []Choice) (string, error)

	// Input reads a line of text. ok is false when the user cancelled.
	Input(prompt, placeholder string) (value string, ok bool, err error)
}

// TUIPrompter implements Prompter with Bubble Tea programs.
type TUIPrompter struct {
	opts []tea.ProgramOption
}

// NewPrompter creates a TUIPrompter. Program options are passed to every
// prompt, e.g. tea.WithInput for tests.
func NewPrompter(opts ...tea.ProgramOption) Prompter {
	return &TUIPrompter{opts: opts}
}

// Choose shows a ChoiceModel.
func (p *TUIPrompter) Choose(question string, choices []Choice) (string, error) {
	final, err := tea.NewProgram(NewChoiceModel(question, choices), p.opts...).Run()
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	return final.(ChoiceModel).Selected(), nil
}

// Input shows an InputModel.
func (p *TUIPrompter) Input(prompt, placeholder string) (string, bool, error) {
	final, err := tea.NewProgram(NewInputModel(prompt, placeholder), p.opts...).Run()
	if err != nil {
		return "", false, fmt.Errorf("prompt failed: %w", err)
	}
	value, ok := final.(InputModel).Value()
	return value, ok, nil
}
