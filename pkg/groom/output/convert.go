package output

import (
	"github.com/jamesainslie/groom/pkg/groom/manifest"
	"github.com/jamesainslie/groom/pkg/groom/scanner"
)

// FromScan converts a scanner result. signatures and exclude are echoed in
// the report header.
func FromScan(res *scanner.Result, signatures, exclude []string, interrupted bool) *SearchResult {
	out := &SearchResult{
		Root:        res.Root,
		Signatures:  signatures,
		Exclude:     exclude,
		Matches:     make([]Match, len(res.Matches)),
		Interrupted: interrupted,
		Stats: SearchStats{
			DirsScanned:  res.DirsScanned,
			FilesScanned: res.FilesScanned,
			BytesScanned: res.BytesScanned,
			Duration:     res.Elapsed,
		},
	}

	for i, m := range res.Matches {
		out.Matches[i] = Match(m)
	}

	for _, e := range res.Errors {
		out.Errors = append(out.Errors, SearchError{
			Kind:    e.Kind.String(),
			Path:    e.Path,
			Message: e.Message(),
		})
	}

	return out
}

// FromSync converts a synchronizer outcome.
func FromSync(o *manifest.Outcome) *SyncResult {
	out := &SyncResult{
		Action:   o.Action.String(),
		Message:  o.Action.Message(),
		Manifest: o.ManifestPath,
		Backup:   o.BackupPath,
		Created:  o.Created,
	}

	for _, d := range o.Diffs {
		out.Changes = append(out.Changes, FieldChange{
			Field:       d.Field,
			PackagePath: d.PackagePath,
			Old:         d.Got,
			New:         d.Want,
		})
	}

	return out
}
