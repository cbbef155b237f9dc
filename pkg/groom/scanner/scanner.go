package scanner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/jamesainslie/groom/pkg/groom/logging"
	"github.com/jamesainslie/groom/pkg/groom/signature"
	"github.com/spf13/afero"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

var logger = logging.Get("scanner")

// Errors returned before the walk starts.
var (
	ErrNotDirectory    = errors.New("search root is not a directory")
	ErrUnknownEncoding = errors.New("unknown text encoding")
	ErrBadPattern      = errors.New("invalid exclusion pattern")
)

// Match is a single line of a file that contains a signature.
type Match struct {
	Path      string `json:"path" yaml:"path"`
	Line      int    `json:"line" yaml:"line"` // 0-based
	Signature string `json:"signature" yaml:"signature"`
	Content   string `json:"content" yaml:"content"`
}

// Result is the outcome of a completed or cancelled walk.
type Result struct {
	Root         string
	Matches      []Match
	DirsScanned  int64
	FilesScanned int64
	BytesScanned int64
	Errors       []ScanError
	Elapsed      time.Duration
}

// Scanner searches a directory tree for signatures.
// A Scanner is not safe for concurrent use.
type Scanner struct {
	opts       Options
	signatures []string
	encoding   encoding.Encoding
}

// New creates a Scanner. Defaults are applied to unset options and the
// encoding label and exclusion patterns are checked.
func New(opts Options) (*Scanner, error) {
	_ = opts.Validate()

	enc, err := htmlindex.Get(opts.Encoding)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, opts.Encoding)
	}

	for _, pattern := range opts.Exclude {
		if isPattern(pattern) && !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: %q", ErrBadPattern, pattern)
		}
	}

	return &Scanner{
		opts:       opts,
		signatures: opts.Signatures.Strings(),
		encoding:   enc,
	}, nil
}

// Search walks root with the default encoding and reports every match.
func Search(ctx context.Context, root string, signatures signature.Set, exclude []string) (*Result, error) {
	s, err := New(Options{Root: root, Signatures: signatures, Exclude: exclude})
	if err != nil {
		return nil, err
	}
	return s.Scan(ctx)
}

// Scan walks the tree depth first in name order. Unreadable paths are
// recorded in Result.Errors and do not stop the walk. On cancellation the
// partial result is returned together with the context error.
func (s *Scanner) Scan(ctx context.Context) (*Result, error) {
	start := time.Now()

	root, err := s.validateRoot()
	if err != nil {
		return nil, err
	}

	logger.Info("search started",
		"root", root,
		"signatures", len(s.signatures),
		"exclude", strings.Join(s.opts.Exclude, ","),
	)

	result := &Result{Root: root}

	// Work-list of entry paths. The root is listed directly so that it is
	// never exclusion-tested and may itself be a symlink.
	var pending []string
	pending = s.expand(root, pending, result)

	for len(pending) > 0 {
		if err := ctx.Err(); err != nil {
			result.Elapsed = time.Since(start)
			logger.Warn("search cancelled", "root", root, "matches", len(result.Matches))
			return result, err
		}

		last := len(pending) - 1
		path := pending[last]
		pending = pending[:last]

		pending = s.visit(path, pending, result)
	}

	result.Elapsed = time.Since(start)

	logger.Info("search completed",
		"root", root,
		"dirs", result.DirsScanned,
		"files", result.FilesScanned,
		"matches", len(result.Matches),
		"errors", len(result.Errors),
		"elapsed", result.Elapsed,
	)

	return result, nil
}

// ScanFile searches a single file. Failures are returned as a ScanError of
// kind KindFileRead.
func (s *Scanner) ScanFile(path string) ([]Match, error) {
	matches, _, err := s.scanFile(path)
	return matches, err
}

func (s *Scanner) validateRoot() (string, error) {
	root := filepath.Clean(s.opts.Root)

	info, err := s.opts.FS.Stat(root)
	if err != nil {
		return "", fmt.Errorf("invalid search root: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	return root, nil
}

// visit handles one entry popped from the work-list and returns the
// work-list with any children pushed.
func (s *Scanner) visit(path string, pending []string, result *Result) []string {
	info, err := s.lstat(path)
	if err != nil {
		s.addError(result, KindDirectoryList, path, err)
		return pending
	}

	switch mode := info.Mode(); {
	case mode.IsDir():
		if s.excluded(info.Name()) {
			logger.Debug("skipping excluded directory", "path", path)
			return pending
		}
		return s.expand(path, pending, result)

	case mode.IsRegular():
		matches, size, err := s.scanFile(path)
		if err != nil {
			var scanErr ScanError
			if errors.As(err, &scanErr) {
				s.addError(result, scanErr.Kind, scanErr.Path, scanErr.Err)
			}
			return pending
		}

		result.FilesScanned++
		result.BytesScanned += size
		for _, m := range matches {
			result.Matches = append(result.Matches, m)
			if s.opts.OnMatch != nil {
				s.opts.OnMatch(m)
			}
		}

	default:
		// Symlinks, devices, sockets and pipes are never followed or read.
		logger.Debug("skipping non-regular entry", "path", path, "mode", mode.String())
	}

	return pending
}

// expand lists dir and pushes its children in reverse name order so they
// are popped in name order.
func (s *Scanner) expand(dir string, pending []string, result *Result) []string {
	entries, err := afero.ReadDir(s.opts.FS, dir)
	if err != nil {
		s.addError(result, KindDirectoryList, dir, err)
		return pending
	}

	result.DirsScanned++

	if s.opts.OnProgress != nil {
		s.opts.OnProgress(Progress{
			DirsScanned:  result.DirsScanned,
			FilesScanned: result.FilesScanned,
			Matches:      len(result.Matches),
			CurrentPath:  dir,
		})
	}

	for i := len(entries) - 1; i >= 0; i-- {
		pending = append(pending, filepath.Join(dir, entries[i].Name()))
	}
	return pending
}

func (s *Scanner) lstat(path string) (os.FileInfo, error) {
	if lstater, ok := s.opts.FS.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(path)
		return info, err
	}
	return s.opts.FS.Stat(path)
}

// excluded reports whether a directory base name is on the exclusion list.
func (s *Scanner) excluded(name string) bool {
	for _, pattern := range s.opts.Exclude {
		if name == pattern {
			return true
		}
		if isPattern(pattern) {
			if ok, _ := doublestar.Match(pattern, name); ok {
				return true
			}
		}
	}
	return false
}

func isPattern(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

func (s *Scanner) addError(result *Result, kind ErrorKind, path string, err error) {
	scanErr := ScanError{Kind: kind, Path: path, Err: err}
	result.Errors = append(result.Errors, scanErr)

	logger.Warn("skipping unreadable path", "kind", kind.String(), "path", path, "error", err)

	if s.opts.OnError != nil {
		s.opts.OnError(scanErr)
	}
}
