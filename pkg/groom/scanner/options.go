// Package scanner walks a directory tree and reports every line of every
// regular file that contains one of a set of signatures. The walk is
// sequential and best effort: unreadable directories and files are recorded
// as errors and the rest of the tree is still searched.
package scanner

import (
	"github.com/jamesainslie/groom/pkg/groom/config"
	"github.com/jamesainslie/groom/pkg/groom/signature"
	"github.com/spf13/afero"
)

// Options configures the scanner behavior.
type Options struct {
	// Root is the starting directory for the search.
	Root string

	// Signatures is the normalized signature set matched against each line.
	// An empty set matches nothing, but the tree is still walked.
	Signatures signature.Set

	// Exclude contains directory base names that are never entered.
	// Names containing glob metacharacters are matched as patterns.
	Exclude []string

	// Encoding is the WHATWG label used to decode file contents.
	Encoding string

	// FS is the filesystem walked. Defaults to the OS filesystem.
	FS afero.Fs

	// OnMatch is called for every match, in walk order.
	OnMatch func(Match)

	// OnError is called for every directory or file that could not be read.
	OnError func(ScanError)

	// OnProgress is called after each directory is listed.
	OnProgress func(Progress)
}

// Progress is a snapshot of a running walk.
type Progress struct {
	DirsScanned  int64
	FilesScanned int64
	Matches      int
	CurrentPath  string
}

// DefaultOptions returns options with the default root, exclusions and encoding.
func DefaultOptions() Options {
	return Options{
		Root:       config.DefaultRoot,
		Signatures: signature.New(config.DefaultSignatures, signature.KeepDefaults()),
		Exclude:    config.DefaultExclusions,
		Encoding:   config.DefaultEncoding,
		FS:         afero.NewOsFs(),
	}
}

// Validate fills in defaults for unset fields.
func (o *Options) Validate() error {
	if o.Root == "" {
		o.Root = config.DefaultRoot
	}
	if o.Exclude == nil {
		o.Exclude = config.DefaultExclusions
	}
	if o.Encoding == "" {
		o.Encoding = config.DefaultEncoding
	}
	if o.FS == nil {
		o.FS = afero.NewOsFs()
	}
	return nil
}
