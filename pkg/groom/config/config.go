package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// SearchConfig configures the signature search.
type SearchConfig struct {
	Root       string   `mapstructure:"root"`
	Signatures []string `mapstructure:"signatures"`
	Mode       string   `mapstructure:"mode"`
	Exclude    []string `mapstructure:"exclude"`
	Encoding   string   `mapstructure:"encoding"`
}

// ManifestConfig configures the manifest synchronizer file names.
type ManifestConfig struct {
	Dir     string `mapstructure:"dir"`
	EnvFile string `mapstructure:"env_file"`
	Path    string `mapstructure:"path"`
	Package string `mapstructure:"package"`
	Backup  string `mapstructure:"backup"`
}

// LoggingConfig configures application logging.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Path       string `mapstructure:"path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// Config represents the application configuration.
type Config struct {
	Search   SearchConfig   `mapstructure:"search"`
	Manifest ManifestConfig `mapstructure:"manifest"`
	Output   string         `mapstructure:"output"`
	NoColor  bool           `mapstructure:"no_color"`
	Verbose  bool           `mapstructure:"verbose"`
	Quiet    bool           `mapstructure:"quiet"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// New returns a viper instance with defaults, environment binding and the
// config search path set. Config file locations (in order of precedence):
//   - ./.groom/config.yaml
//   - $XDG_CONFIG_HOME/groom/config.yaml
//   - $HOME/.config/groom/config.yaml
//
// Environment variables are prefixed with GROOM_ (e.g. GROOM_SEARCH_MODE).
func New() *viper.Viper {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(".", "."+appName))
	if dir, err := ConfigDir(); err == nil {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("search.root", DefaultRoot)
	v.SetDefault("search.signatures", DefaultSignatures)
	v.SetDefault("search.mode", DefaultMode)
	v.SetDefault("search.exclude", DefaultExclusions)
	v.SetDefault("search.encoding", DefaultEncoding)

	v.SetDefault("manifest.dir", ".")
	v.SetDefault("manifest.env_file", DefaultEnvFile)
	v.SetDefault("manifest.path", DefaultManifestFile)
	v.SetDefault("manifest.package", DefaultPackageFile)
	v.SetDefault("manifest.backup", DefaultBackupFile)

	v.SetDefault("output", DefaultOutput)
	v.SetDefault("no_color", false)
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.path", "") // Empty means DefaultLogPath
	v.SetDefault("logging.max_size", DefaultLogMaxSize)
	v.SetDefault("logging.max_backups", DefaultLogMaxBackups)
	v.SetDefault("logging.max_age", DefaultLogMaxAge)
	v.SetDefault("logging.compress", true)

	return v
}

// Read reads the config file into v. An explicit cfgFile must exist; when it
// is empty a missing file on the search path is not an error.
func Read(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// Decode unmarshals v into a Config and expands ~ in path settings.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	for _, p := range []*string{&cfg.Search.Root, &cfg.Manifest.Dir, &cfg.Logging.Path} {
		expanded, err := ExpandPath(*p)
		if err != nil {
			return nil, err
		}
		*p = expanded
	}

	return &cfg, nil
}

// Load builds, reads and decodes configuration in one step.
func Load(cfgFile string) (*Config, error) {
	v := New()
	if err := Read(v, cfgFile); err != nil {
		return nil, err
	}
	return Decode(v)
}

// LoadEnvFile loads KEY=value pairs from path into the process environment.
// Variables that are already set keep their values. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := gotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load settings file %s: %w", path, err)
	}
	return nil
}

// ConfigDir returns the configuration directory, honouring XDG_CONFIG_HOME.
func ConfigDir() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, appName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", appName), nil
}

// ConfigPath returns the path of the user-level config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// StateDir returns $XDG_STATE_HOME/groom/ for log files.
func StateDir() string {
	return filepath.Join(xdg.StateHome, appName)
}

// WriteDefault writes a commented default config file to path.
// It returns false without error if the file already exists.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to check config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	content := fmt.Sprintf(`# groom configuration

search:
  # Directory searched when no path argument is given
  root: %s
  # Substrings searched for, case-insensitively
  signatures:
%s
  # How --signature values combine with the list above: append, keep, replace
  mode: %s
  # Directory names never entered
  exclude:
%s
  # Text encoding of scanned files (any WHATWG label, e.g. utf-8, latin1)
  encoding: %s

manifest:
  dir: .
  env_file: %s
  path: %s
  package: %s
  backup: %s

# Output format: pretty, plain, json, yaml
output: %s

logging:
  # Log level: debug, info, warn, error
  level: info
  # Log file path (empty means $XDG_STATE_HOME/groom/groom.log)
  path: ""
  max_size: %d    # megabytes
  max_backups: %d
  max_age: %d     # days
  compress: true
`, DefaultRoot, yamlList(DefaultSignatures), DefaultMode, yamlList(DefaultExclusions), DefaultEncoding,
		DefaultEnvFile, DefaultManifestFile, DefaultPackageFile, DefaultBackupFile, DefaultOutput,
		DefaultLogMaxSize, DefaultLogMaxBackups, DefaultLogMaxAge)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("failed to write default config: %w", err)
	}
	return true, nil
}

func yamlList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("    - %q", item)
	}
	return strings.Join(lines, "\n")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, path[1:]), nil
}
