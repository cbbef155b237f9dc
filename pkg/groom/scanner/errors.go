package scanner

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure encountered during the walk.
type ErrorKind int

const (
	// KindDirectoryList means a directory could not be listed or an entry
	// could not be stat-ed. The affected subtree is skipped.
	KindDirectoryList ErrorKind = iota
	// KindFileRead means a file could not be read or decoded. Only that
	// file is skipped.
	KindFileRead
)

// String returns the name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindDirectoryList:
		return "directory_list"
	case KindFileRead:
		return "file_read"
	default:
		return "unknown"
	}
}

// Sentinel errors for errors.Is checks against a ScanError.
var (
	ErrDirectoryList = errors.New("directory listing failed")
	ErrFileRead      = errors.New("file read failed")
)

// ScanError records a path that could not be searched.
type ScanError struct {
	Kind ErrorKind `json:"kind" yaml:"kind"`
	Path string    `json:"path" yaml:"path"`
	Err  error     `json:"-" yaml:"-"`
}

func (e ScanError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.sentinel(), e.Path)
	}
	return fmt.Sprintf("%s: %s: %v", e.sentinel(), e.Path, e.Err)
}

// Unwrap returns the kind sentinel and the underlying cause.
func (e ScanError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.sentinel()}
	}
	return []error{e.sentinel(), e.Err}
}

// Message returns the underlying error text, or an empty string.
func (e ScanError) Message() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e ScanError) sentinel() error {
	if e.Kind == KindFileRead {
		return ErrFileRead
	}
	return ErrDirectoryList
}
