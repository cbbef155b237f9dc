package output

import (
	"bytes"
	"encoding/json"
)

type jsonSearch struct {
	Root        string        `json:"root"`
	Signatures  []string      `json:"signatures"`
	Exclude     []string      `json:"exclude"`
	Matches     []Match       `json:"matches"`
	Errors      []SearchError `json:"errors,omitempty"`
	Stats       jsonStats     `json:"stats"`
	Interrupted bool          `json:"interrupted"`
}

type jsonStats struct {
	DirsScanned  int64  `json:"dirs_scanned"`
	FilesScanned int64  `json:"files_scanned"`
	BytesScanned int64  `json:"bytes_scanned"`
	Duration     string `json:"duration"`
}

type jsonSync struct {
	Action   string        `json:"action"`
	Message  string        `json:"message,omitempty"`
	Manifest string        `json:"manifest"`
	Backup   string        `json:"backup,omitempty"`
	Created  []string      `json:"created,omitempty"`
	Changes  []FieldChange `json:"changes,omitempty"`
}

// JSONFormatter writes a single indented JSON document.
type JSONFormatter struct{}

// FormatSearch writes the search result as JSON.
func (f *JSONFormatter) FormatSearch(w *bytes.Buffer, r *SearchResult) error {
	out := jsonSearch{
		Root:        r.Root,
		Signatures:  nonNil(r.Signatures),
		Exclude:     nonNil(r.Exclude),
		Matches:     r.Matches,
		Errors:      r.Errors,
		Interrupted: r.Interrupted,
		Stats: jsonStats{
			DirsScanned:  r.Stats.DirsScanned,
			FilesScanned: r.Stats.FilesScanned,
			BytesScanned: r.Stats.BytesScanned,
			Duration:     r.Stats.Duration.String(),
		},
	}
	if out.Matches == nil {
		out.Matches = []Match{}
	}
	return encodeJSON(w, out)
}

// FormatSync writes the sync result as JSON.
func (f *JSONFormatter) FormatSync(w *bytes.Buffer, r *SyncResult) error {
	return encodeJSON(w, jsonSync{
		Action:   r.Action,
		Message:  r.Message,
		Manifest: r.Manifest,
		Backup:   r.Backup,
		Created:  r.Created,
		Changes:  r.Changes,
	})
}

func encodeJSON(w *bytes.Buffer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func init() {
	Register("json", func() Formatter {
		return &JSONFormatter{}
	})
}

var _ Formatter = (*JSONFormatter)(nil)
