package scanner

import (
	"strings"

	"github.com/jamesainslie/groom/pkg/groom/signature"
	"github.com/spf13/afero"
)

// scanFile reads path whole and returns its matches and size in bytes.
func (s *Scanner) scanFile(path string) ([]Match, int64, error) {
	data, err := afero.ReadFile(s.opts.FS, path)
	if err != nil {
		return nil, 0, ScanError{Kind: KindFileRead, Path: path, Err: err}
	}

	if len(s.signatures) == 0 {
		return nil, int64(len(data)), nil
	}

	// Invalid byte sequences decode to U+FFFD rather than failing.
	text, err := s.encoding.NewDecoder().Bytes(data)
	if err != nil {
		return nil, 0, ScanError{Kind: KindFileRead, Path: path, Err: err}
	}

	return matchLines(path, string(text), s.signatures), int64(len(data)), nil
}

// matchLines splits text on "\n" and tests every signature against every
// line. Carriage returns are part of the line. A line containing several
// signatures yields one Match per signature.
func matchLines(path, text string, signatures []string) []Match {
	var matches []Match

	for i, line := range strings.Split(text, "\n") {
		upper := signature.Normalize(line)
		for _, sig := range signatures {
			if strings.Contains(upper, sig) {
				matches = append(matches, Match{
					Path:      path,
					Line:      i,
					Signature: sig,
					Content:   line,
				})
			}
		}
	}

	return matches
}
