// Package output renders search and manifest-sync results in the formats
// groom supports (pretty, plain, json, yaml).
//
// Formatters are looked up by name from a registry:
//
//	formatter, err := output.Get("pretty")
//	if err != nil {
//	    return err
//	}
//	var buf bytes.Buffer
//	if err := formatter.FormatSearch(&buf, result); err != nil {
//	    return err
//	}
//	fmt.Print(buf.String())
package output

import (
	"bytes"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jamesainslie/groom/pkg/groom/logging"
)

var logger = logging.Get("output")

// Match is one reported line.
type Match struct {
	Path      string `json:"path" yaml:"path"`
	Line      int    `json:"line" yaml:"line"`
	Signature string `json:"signature" yaml:"signature"`
	Content   string `json:"content" yaml:"content"`
}

// SearchError is a path that could not be searched.
type SearchError struct {
	Kind    string `json:"kind" yaml:"kind"`
	Path    string `json:"path" yaml:"path"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// SearchStats summarizes a walk.
type SearchStats struct {
	DirsScanned  int64         `json:"dirs_scanned" yaml:"dirs_scanned"`
	FilesScanned int64         `json:"files_scanned" yaml:"files_scanned"`
	BytesScanned int64         `json:"bytes_scanned" yaml:"bytes_scanned"`
	Duration     time.Duration `json:"duration" yaml:"duration"`
}

// SearchResult is everything a formatter needs to render a search.
type SearchResult struct {
	Root        string
	Signatures  []string
	Exclude     []string
	Matches     []Match
	Errors      []SearchError
	Stats       SearchStats
	Interrupted bool
}

// FieldChange is one manifest field rewritten from the package.
type FieldChange struct {
	Field       string `json:"field" yaml:"field"`
	PackagePath string `json:"package_path" yaml:"package_path"`
	Old         string `json:"old" yaml:"old"`
	New         string `json:"new" yaml:"new"`
}

// SyncResult is everything a formatter needs to render a manifest sync.
type SyncResult struct {
	Action   string
	Message  string
	Manifest string
	Backup   string
	Created  []string
	Changes  []FieldChange
}

// Formatter renders results into a buffer.
type Formatter interface {
	// FormatSearch writes a search report.
	FormatSearch(w *bytes.Buffer, r *SearchResult) error

	// FormatSync writes a manifest sync report.
	FormatSync(w *bytes.Buffer, r *SyncResult) error
}

// FormatterFactory creates a Formatter.
type FormatterFactory func() Formatter

// Registry manages formatter registration and lookup.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]FormatterFactory
}

// NewRegistry creates an empty formatter registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]FormatterFactory),
	}
}

// Register adds a formatter factory, replacing any existing one with the same name.
func (r *Registry) Register(name string, factory FormatterFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Get returns a new formatter instance by name.
func (r *Registry) Get(name string) (Formatter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[name]
	if !ok {
		logger.Debug("unknown formatter requested", "name", name)
		return nil, fmt.Errorf("unknown formatter: %s", name)
	}
	return factory(), nil
}

// Available returns the sorted names of all registered formatters.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is the global formatter registry.
var DefaultRegistry = NewRegistry()

// Register adds a formatter factory to the default registry.
func Register(name string, factory FormatterFactory) {
	DefaultRegistry.Register(name, factory)
}

// Get returns a new formatter instance from the default registry.
func Get(name string) (Formatter, error) {
	return DefaultRegistry.Get(name)
}

// Available returns all formatter names from the default registry.
func Available() []string {
	return DefaultRegistry.Available()
}
