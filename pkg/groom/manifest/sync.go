package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jamesainslie/groom/pkg/groom/config"
	"github.com/jamesainslie/groom/pkg/groom/logging"
	"github.com/spf13/afero"
)

var logger = logging.Get("manifest")

// EnvTemplate is written to the settings file when it does not exist.
const EnvTemplate = "# Type here any requested keys, token or other, for example, API or connection data\nEXAMPLE_API_KEY="

// emptyManifest is written to the manifest file when it does not exist.
const emptyManifest = "{}"

// Paths names the files the synchronizer works on. Relative names are
// resolved against Dir.
type Paths struct {
	Dir      string
	EnvFile  string
	Manifest string
	Package  string
	Backup   string
}

// DefaultPaths returns the default file names inside dir.
func DefaultPaths(dir string) Paths {
	return Paths{
		Dir:      dir,
		EnvFile:  config.DefaultEnvFile,
		Manifest: config.DefaultManifestFile,
		Package:  config.DefaultPackageFile,
		Backup:   config.DefaultBackupFile,
	}
}

func (p Paths) withDefaults() Paths {
	d := DefaultPaths(p.Dir)
	if d.Dir == "" {
		d.Dir = "."
	}
	if p.EnvFile != "" {
		d.EnvFile = p.EnvFile
	}
	if p.Manifest != "" {
		d.Manifest = p.Manifest
	}
	if p.Package != "" {
		d.Package = p.Package
	}
	if p.Backup != "" {
		d.Backup = p.Backup
	}
	return d
}

func (p Paths) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.Dir, name)
}

// EnvFilePath returns the resolved settings file path.
func (p Paths) EnvFilePath() string { return p.resolve(p.EnvFile) }

// ManifestPath returns the resolved manifest path.
func (p Paths) ManifestPath() string { return p.resolve(p.Manifest) }

// PackagePath returns the resolved package file path.
func (p Paths) PackagePath() string { return p.resolve(p.Package) }

// BackupPath returns the resolved backup path.
func (p Paths) BackupPath() string { return p.resolve(p.Backup) }

// Action is what a sync did to the manifest.
type Action int

const (
	// ActionNone means only setup ran.
	ActionNone Action = iota
	// ActionInSync means every mapped field already matched; nothing was written.
	ActionInSync
	// ActionRewritten means the manifest was backed up and rebuilt.
	ActionRewritten
)

// String returns the name of the action.
func (a Action) String() string {
	switch a {
	case ActionInSync:
		return "in_sync"
	case ActionRewritten:
		return "rewritten"
	default:
		return "none"
	}
}

// MarshalText encodes the action by name.
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Message returns the user-facing sentence for the action.
func (a Action) Message() string {
	switch a {
	case ActionInSync:
		return "Manifest is synced with package, keep everything as it was."
	case ActionRewritten:
		return "Manifest is not synced with package's information, rewriting it."
	default:
		return ""
	}
}

// Outcome reports what Setup and Sync did.
type Outcome struct {
	Action       Action      `json:"action" yaml:"action"`
	Created      []string    `json:"created,omitempty" yaml:"created,omitempty"`
	Diffs        []FieldDiff `json:"diffs,omitempty" yaml:"diffs,omitempty"`
	ManifestPath string      `json:"manifest" yaml:"manifest"`
	BackupPath   string      `json:"backup,omitempty" yaml:"backup,omitempty"`
}

// Synchronizer creates missing project files and rewrites the manifest
// from the package file.
type Synchronizer struct {
	fs    afero.Fs
	paths Paths
}

// New creates a Synchronizer. Empty path fields take their defaults and a
// nil fs uses the OS filesystem.
func New(paths Paths, fs afero.Fs) *Synchronizer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Synchronizer{fs: fs, paths: paths.withDefaults()}
}

// Paths returns the resolved configuration of the synchronizer.
func (s *Synchronizer) Paths() Paths {
	return s.paths
}

// Setup creates the settings file and the manifest when they are missing.
// Existing files are left untouched. It returns the paths it created.
func (s *Synchronizer) Setup(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var created []string

	files := []struct {
		path    string
		content string
	}{
		{s.paths.EnvFilePath(), EnvTemplate},
		{s.paths.ManifestPath(), emptyManifest},
	}

	for _, f := range files {
		ok, err := s.ensureFile(f.path, f.content)
		if err != nil {
			return created, err
		}
		if ok {
			logger.Info("created missing file", "path", f.path)
			created = append(created, f.path)
		}
	}

	return created, nil
}

// Sync compares the manifest with the package and rebuilds it when any
// mapped field differs. The previous manifest bytes are copied to the backup
// path first, replacing any earlier backup.
func (s *Synchronizer) Sync(ctx context.Context) (*Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pkgPath := s.paths.PackagePath()
	manifestPath := s.paths.ManifestPath()

	pkgDoc, err := afero.ReadFile(s.fs, pkgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read package file: %w", err)
	}
	if err := validate(pkgPath, pkgDoc); err != nil {
		return nil, err
	}

	manifestDoc, err := afero.ReadFile(s.fs, manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	if err := validate(manifestPath, manifestDoc); err != nil {
		return nil, err
	}

	outcome := &Outcome{ManifestPath: manifestPath}

	rebuilt, diffs, err := Reconcile(pkgDoc, manifestDoc)
	if err != nil {
		return nil, err
	}
	if len(diffs) == 0 {
		outcome.Action = ActionInSync
		logger.Info("manifest in sync", "manifest", manifestPath)
		return outcome, nil
	}

	backupPath := s.paths.BackupPath()
	if err := s.writeAtomic(backupPath, manifestDoc); err != nil {
		return nil, fmt.Errorf("failed to write manifest backup: %w", err)
	}
	if err := s.writeAtomic(manifestPath, rebuilt); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}

	logger.Info("manifest rewritten",
		"manifest", manifestPath,
		"backup", backupPath,
		"fields", len(diffs),
	)

	outcome.Action = ActionRewritten
	outcome.Diffs = diffs
	outcome.BackupPath = backupPath
	return outcome, nil
}

// Run always performs Setup and performs Sync only when sync is true.
func (s *Synchronizer) Run(ctx context.Context, sync bool) (*Outcome, error) {
	created, err := s.Setup(ctx)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{ManifestPath: s.paths.ManifestPath()}
	if sync {
		outcome, err = s.Sync(ctx)
		if err != nil {
			return nil, err
		}
	}

	outcome.Created = created
	return outcome, nil
}

// ensureFile writes content to path if nothing exists there yet.
func (s *Synchronizer) ensureFile(path, content string) (bool, error) {
	if _, err := s.fs.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("failed to check %s: %w", path, err)
	}

	if err := s.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := afero.WriteFile(s.fs, path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return true, nil
}

// writeAtomic writes data to a temp file and renames it over path.
func (s *Synchronizer) writeAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := s.fs.Rename(tmpPath, path); err != nil {
		_ = s.fs.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}
