package output

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

type yamlSearch struct {
	Root        string        `yaml:"root"`
	Signatures  []string      `yaml:"signatures"`
	Exclude     []string      `yaml:"exclude"`
	Matches     []Match       `yaml:"matches"`
	Errors      []SearchError `yaml:"errors,omitempty"`
	Stats       yamlStats     `yaml:"stats"`
	Interrupted bool          `yaml:"interrupted"`
}

type yamlStats struct {
	DirsScanned  int64  `yaml:"dirs_scanned"`
	FilesScanned int64  `yaml:"files_scanned"`
	BytesScanned int64  `yaml:"bytes_scanned"`
	Duration     string `yaml:"duration"`
}

type yamlSync struct {
	Action   string        `yaml:"action"`
	Message  string        `yaml:"message,omitempty"`
	Manifest string        `yaml:"manifest"`
	Backup   string        `yaml:"backup,omitempty"`
	Created  []string      `yaml:"created,omitempty"`
	Changes  []FieldChange `yaml:"changes,omitempty"`
}

// YAMLFormatter writes a YAML document.
type YAMLFormatter struct{}

// FormatSearch writes the search result as YAML.
func (f *YAMLFormatter) FormatSearch(w *bytes.Buffer, r *SearchResult) error {
	return encodeYAML(w, yamlSearch{
		Root:        r.Root,
		Signatures:  nonNil(r.Signatures),
		Exclude:     nonNil(r.Exclude),
		Matches:     r.Matches,
		Errors:      r.Errors,
		Interrupted: r.Interrupted,
		Stats: yamlStats{
			DirsScanned:  r.Stats.DirsScanned,
			FilesScanned: r.Stats.FilesScanned,
			BytesScanned: r.Stats.BytesScanned,
			Duration:     r.Stats.Duration.String(),
		},
	})
}

// FormatSync writes the sync result as YAML.
func (f *YAMLFormatter) FormatSync(w *bytes.Buffer, r *SyncResult) error {
	return encodeYAML(w, yamlSync{
		Action:   r.Action,
		Message:  r.Message,
		Manifest: r.Manifest,
		Backup:   r.Backup,
		Created:  r.Created,
		Changes:  r.Changes,
	})
}

func encodeYAML(w *bytes.Buffer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

func init() {
	Register("yaml", func() Formatter {
		return &YAMLFormatter{}
	})
}

var _ Formatter = (*YAMLFormatter)(nil)
