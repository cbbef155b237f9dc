package output

import (
	"bytes"
	"fmt"
)

// PlainFormatter writes unstyled text suitable for piping.
type PlainFormatter struct{}

// FormatSearch writes each match as
//
//	Found "SIGNATURE" in L#<line> of:
//	<path>
//
// followed by one "skipped" line per unreadable path.
func (f *PlainFormatter) FormatSearch(w *bytes.Buffer, r *SearchResult) error {
	for _, m := range r.Matches {
		fmt.Fprintf(w, "Found \"%s\" in L#%d of:\n%s\n", m.Signature, m.Line, m.Path)
	}
	for _, e := range r.Errors {
		fmt.Fprintf(w, "skipped %s %s: %s\n", e.Kind, e.Path, e.Message)
	}
	return nil
}

// FormatSync writes created files, the sync decision and, when the manifest
// was rewritten, a borderless change table.
func (f *PlainFormatter) FormatSync(w *bytes.Buffer, r *SyncResult) error {
	for _, path := range r.Created {
		fmt.Fprintf(w, "created %s\n", path)
	}
	if r.Message != "" {
		w.WriteString(r.Message)
		w.WriteString("\n")
	}
	if len(r.Changes) > 0 {
		renderChanges(w, r.Changes, false)
	}
	return nil
}

func init() {
	Register("plain", func() Formatter {
		return &PlainFormatter{}
	})
}

var _ Formatter = (*PlainFormatter)(nil)
