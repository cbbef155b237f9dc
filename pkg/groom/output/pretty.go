package output

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

// PrettyFormatter renders colored, human-oriented reports with lipgloss.
type PrettyFormatter struct{}

// FormatSearch writes one block per match followed by a summary box.
func (f *PrettyFormatter) FormatSearch(w *bytes.Buffer, r *SearchResult) error {
	if len(r.Matches) == 0 {
		w.WriteString(MutedStyle.Render("No signatures found under " + r.Root))
		w.WriteString("\n")
	}

	for _, m := range r.Matches {
		fmt.Fprintf(w, "Found %s in %s of:\n%s\n",
			SignatureStyle.Render(`"`+m.Signature+`"`),
			LineStyle.Render(fmt.Sprintf("L#%d", m.Line)),
			PathStyle.Render(m.Path),
		)
	}

	if len(r.Errors) > 0 {
		w.WriteString("\n")
		w.WriteString(WarningStyle.Bold(true).Render("Skipped:"))
		w.WriteString("\n")
		for _, e := range r.Errors {
			w.WriteString("  " + PathStyle.Render(e.Path) + "  " + ErrorStyle.Render(e.Message))
			w.WriteString("\n")
		}
	}

	w.WriteString(f.formatFooter(r))
	w.WriteString("\n")
	return nil
}

func (f *PrettyFormatter) formatFooter(r *SearchResult) string {
	parts := []string{
		label("Matches:", humanize.Comma(int64(len(r.Matches)))),
		label("Files:", humanize.Comma(r.Stats.FilesScanned)),
		label("Dirs:", humanize.Comma(r.Stats.DirsScanned)),
		label("Read:", humanize.Bytes(uint64(r.Stats.BytesScanned))),
		label("Time:", formatDuration(r.Stats.Duration)),
	}

	if r.Interrupted {
		parts = append(parts, WarningStyle.Bold(true).Render("interrupted"))
	}

	return FooterBox.Render(strings.Join(parts, "  "))
}

// FormatSync writes created files, the sync decision and a change table.
func (f *PrettyFormatter) FormatSync(w *bytes.Buffer, r *SyncResult) error {
	for _, path := range r.Created {
		w.WriteString(SuccessStyle.Render("Created " + path))
		w.WriteString("\n")
	}

	switch r.Action {
	case "in_sync":
		w.WriteString(SuccessStyle.Render(r.Message))
		w.WriteString("\n")
	case "rewritten":
		w.WriteString(WarningStyle.Render(r.Message))
		w.WriteString("\n\n")
		renderChanges(w, r.Changes, true)
		w.WriteString("\n")
		w.WriteString(label("Backup:", r.Backup))
		w.WriteString("\n")
	}

	return nil
}

func label(name, value string) string {
	return LabelStyle.Render(name) + " " + ValueStyle.Render(value)
}

// renderChanges writes a field/old/new table of manifest changes.
func renderChanges(w *bytes.Buffer, changes []FieldChange, bordered bool) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Field", "Old", "New"})
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	if !bordered {
		table.SetBorder(false)
		table.SetHeaderLine(false)
		table.SetColumnSeparator("")
		table.SetCenterSeparator("")
		table.SetTablePadding("  ")
		table.SetNoWhiteSpace(true)
	}

	for _, c := range changes {
		table.Append([]string{c.Field, orAbsent(c.Old), orAbsent(c.New)})
	}
	table.Render()
}

func orAbsent(raw string) string {
	if raw == "" {
		return "-"
	}
	return raw
}

// formatDuration formats a duration in a human-friendly way.
func formatDuration(d time.Duration) string {
	sec := d.Seconds()
	if sec < 1 {
		return fmt.Sprintf("%.0fms", sec*1000)
	}
	if sec < 60 {
		return fmt.Sprintf("%.1fs", sec)
	}
	minutes := int(sec) / 60
	seconds := int(sec) % 60
	if minutes < 60 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

func init() {
	Register("pretty", func() Formatter {
		return &PrettyFormatter{}
	})
}

var _ Formatter = (*PrettyFormatter)(nil)
