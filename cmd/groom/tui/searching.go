package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/jamesainslie/groom/pkg/groom/scanner"
)

// ProgressMsg is sent when the walk lists another directory.
type ProgressMsg scanner.Progress

// DoneMsg is sent when the search returns.
type DoneMsg struct {
	Err error
}

// SearchModel shows a spinner and live counters while a search runs.
type SearchModel struct {
	spinner   spinner.Model
	root      string
	progress  scanner.Progress
	startTime time.Time
	done      bool
	cancelled bool
	err       error
}

// NewSearchModel creates the progress display for a search of root.
func NewSearchModel(root string) SearchModel {
	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = lipgloss.NewStyle().Foreground(primaryColor)

	return SearchModel{
		spinner:   s,
		root:      root,
		startTime: time.Now(),
	}
}

// Init implements tea.Model.
func (m SearchModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ProgressMsg:
		m.progress = scanner.Progress(msg)
		return m, nil

	case DoneMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			m.cancelled = true
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m SearchModel) View() string {
	if m.done {
		if m.err != nil {
			return errorTextStyle.Render(fmt.Sprintf("Search failed: %v", m.err)) + "\n"
		}
		return ""
	}
	if m.cancelled {
		return mutedTextStyle.Render("Search cancelled") + "\n"
	}

	return fmt.Sprintf("%s Searching %s\n%s\n",
		m.spinner.View(),
		m.root,
		mutedTextStyle.Render(fmt.Sprintf("  %s dirs  %s files  %d matches  %s",
			humanize.Comma(m.progress.DirsScanned),
			humanize.Comma(m.progress.FilesScanned),
			m.progress.Matches,
			time.Since(m.startTime).Round(time.Second),
		)),
	)
}

// Cancelled reports whether the user interrupted the search.
func (m SearchModel) Cancelled() bool {
	return m.cancelled
}

// SearchFunc runs a search, reporting progress through the callback.
type SearchFunc func(ctx context.Context, progress func(scanner.Progress)) error

// RunSearch runs search while displaying progress. Esc or Ctrl+C cancels the
// context passed to search; the search error is returned once it has stopped.
func RunSearch(ctx context.Context, root string, search SearchFunc, opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewSearchModel(root), opts...)

	errCh := make(chan error, 1)
	go func() {
		err := search(ctx, func(pr scanner.Progress) {
			p.Send(ProgressMsg(pr))
		})
		p.Send(DoneMsg{Err: err})
		errCh <- err
	}()

	final, runErr := p.Run()
	if m, ok := final.(SearchModel); runErr != nil || (ok && m.Cancelled()) {
		cancel()
	}

	searchErr := <-errCh
	if runErr != nil {
		return fmt.Errorf("progress display failed: %w", runErr)
	}
	return searchErr
}
