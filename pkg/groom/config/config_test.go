package config

import (
	"os"
	"path/filepath"
	"testing"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	return home
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Search.Root != DefaultRoot {
		t.Errorf("Search.Root = %q, want %q", cfg.Search.Root, DefaultRoot)
	}
	if cfg.Search.Mode != DefaultMode {
		t.Errorf("Search.Mode = %q, want %q", cfg.Search.Mode, DefaultMode)
	}
	if len(cfg.Search.Signatures) != len(DefaultSignatures) {
		t.Errorf("len(Search.Signatures) = %d, want %d", len(cfg.Search.Signatures), len(DefaultSignatures))
	}
	if len(cfg.Search.Exclude) != len(DefaultExclusions) {
		t.Errorf("len(Search.Exclude) = %d, want %d", len(cfg.Search.Exclude), len(DefaultExclusions))
	}
	if cfg.Manifest.Path != DefaultManifestFile {
		t.Errorf("Manifest.Path = %q, want %q", cfg.Manifest.Path, DefaultManifestFile)
	}
	if cfg.Manifest.Backup != DefaultBackupFile {
		t.Errorf("Manifest.Backup = %q, want %q", cfg.Manifest.Backup, DefaultBackupFile)
	}
	if cfg.Output != DefaultOutput {
		t.Errorf("Output = %q, want %q", cfg.Output, DefaultOutput)
	}
	if cfg.Logging.MaxSize != DefaultLogMaxSize {
		t.Errorf("Logging.MaxSize = %d, want %d", cfg.Logging.MaxSize, DefaultLogMaxSize)
	}
	if !cfg.Logging.Compress {
		t.Error("Logging.Compress = false, want true")
	}
}

func TestLoad_FromFile(t *testing.T) {
	home := isolate(t)
	configDir := filepath.Join(home, ".config", "groom")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	configContent := `
search:
  root: /srv/project
  mode: append
  signatures:
    - secret
  exclude:
    - vendor
  encoding: latin1
manifest:
  backup: manifest.bak
output: json
logging:
  level: debug
`
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Search.Root != "/srv/project" {
		t.Errorf("Search.Root = %q, want /srv/project", cfg.Search.Root)
	}
	if cfg.Search.Mode != "append" {
		t.Errorf("Search.Mode = %q, want append", cfg.Search.Mode)
	}
	if len(cfg.Search.Signatures) != 1 || cfg.Search.Signatures[0] != "secret" {
		t.Errorf("Search.Signatures = %v, want [secret]", cfg.Search.Signatures)
	}
	if len(cfg.Search.Exclude) != 1 || cfg.Search.Exclude[0] != "vendor" {
		t.Errorf("Search.Exclude = %v, want [vendor]", cfg.Search.Exclude)
	}
	if cfg.Search.Encoding != "latin1" {
		t.Errorf("Search.Encoding = %q, want latin1", cfg.Search.Encoding)
	}
	if cfg.Manifest.Backup != "manifest.bak" {
		t.Errorf("Manifest.Backup = %q, want manifest.bak", cfg.Manifest.Backup)
	}
	// Unset keys keep their defaults.
	if cfg.Manifest.Path != DefaultManifestFile {
		t.Errorf("Manifest.Path = %q, want %q", cfg.Manifest.Path, DefaultManifestFile)
	}
	if cfg.Output != "json" {
		t.Errorf("Output = %q, want json", cfg.Output)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Load() with missing explicit file should error")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("GROOM_SEARCH_MODE", "keep")
	t.Setenv("GROOM_OUTPUT", "plain")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Search.Mode != "keep" {
		t.Errorf("Search.Mode = %q, want keep", cfg.Search.Mode)
	}
	if cfg.Output != "plain" {
		t.Errorf("Output = %q, want plain", cfg.Output)
	}
}

func TestLoad_ExpandsHome(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("search:\n  root: ~/code\n"), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := filepath.Join(home, "code")
	if cfg.Search.Root != want {
		t.Errorf("Search.Root = %q, want %q", cfg.Search.Root, want)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "groom", "config.yaml")

	created, err := WriteDefault(path)
	if err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}
	if !created {
		t.Error("WriteDefault() created = false, want true")
	}

	// The written file must load back to the defaults.
	isolate(t)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() of default file error = %v", err)
	}
	if len(cfg.Search.Signatures) != len(DefaultSignatures) {
		t.Errorf("len(Search.Signatures) = %d, want %d", len(cfg.Search.Signatures), len(DefaultSignatures))
	}
	if cfg.Search.Exclude[0] != DefaultExclusions[0] {
		t.Errorf("Search.Exclude[0] = %q, want %q", cfg.Search.Exclude[0], DefaultExclusions[0])
	}

	created, err = WriteDefault(path)
	if err != nil {
		t.Fatalf("second WriteDefault() error = %v", err)
	}
	if created {
		t.Error("second WriteDefault() created = true, want false")
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\nGROOM_TEST_API_KEY=abc123\nGROOM_TEST_PRESET=from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}

	t.Setenv("GROOM_TEST_PRESET", "from-env")
	t.Setenv("GROOM_TEST_API_KEY", "")
	os.Unsetenv("GROOM_TEST_API_KEY")

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile() error = %v", err)
	}

	if got := os.Getenv("GROOM_TEST_API_KEY"); got != "abc123" {
		t.Errorf("GROOM_TEST_API_KEY = %q, want abc123", got)
	}
	if got := os.Getenv("GROOM_TEST_PRESET"); got != "from-env" {
		t.Errorf("GROOM_TEST_PRESET = %q, want from-env", got)
	}
}

func TestLoadEnvFile_Missing(t *testing.T) {
	if err := LoadEnvFile(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Errorf("LoadEnvFile() on missing file error = %v, want nil", err)
	}
}

func TestExpandPath(t *testing.T) {
	home := isolate(t)

	tests := []struct {
		in   string
		want string
	}{
		{"~/logs", filepath.Join(home, "logs")},
		{"/abs/path", "/abs/path"},
		{"relative", "relative"},
		{"", ""},
	}

	for _, tt := range tests {
		got, err := ExpandPath(tt.in)
		if err != nil {
			t.Fatalf("ExpandPath(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConfigDir_XDG(t *testing.T) {
	xdgHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdgHome)

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if want := filepath.Join(xdgHome, "groom"); dir != want {
		t.Errorf("ConfigDir() = %q, want %q", dir, want)
	}
}
