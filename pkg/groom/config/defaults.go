// Package config provides configuration management for groom.
package config

// Default configuration values for groom.
const (
	// DefaultRoot is the directory searched when none is specified.
	DefaultRoot = "."

	// DefaultMode is the signature merge policy used when none is specified.
	DefaultMode = "replace"

	// DefaultEncoding is the text encoding used to decode scanned files.
	DefaultEncoding = "utf-8"

	// DefaultOutput is the output format name.
	DefaultOutput = "pretty"

	// DefaultEnvFile is the settings file seeded by the manifest setup step.
	DefaultEnvFile = ".env"

	// DefaultManifestFile is the manifest kept in sync with the package file.
	DefaultManifestFile = "manifest.json"

	// DefaultPackageFile is the source-of-truth package description.
	DefaultPackageFile = "package.json"

	// DefaultBackupFile receives a copy of the manifest before it is rewritten.
	DefaultBackupFile = "manifest-backup.json"

	// DefaultLogMaxSize is the log file size in megabytes before rotation.
	DefaultLogMaxSize = 10

	// DefaultLogMaxBackups is the number of rotated log files kept.
	DefaultLogMaxBackups = 5

	// DefaultLogMaxAge is the number of days rotated log files are kept.
	DefaultLogMaxAge = 30

	// EnvPrefix prefixes environment variable overrides (GROOM_SEARCH_ROOT).
	EnvPrefix = "GROOM"

	appName = "groom"
)

// DefaultExclusions contains directory names never entered during a search.
var DefaultExclusions = []string{
	"node_modules",
	"venv",
	".git",
	"out",
}

// DefaultSignatures contains the signatures searched for when nothing else is configured.
var DefaultSignatures = []string{
	"FALCION",
	"PATTERNU",
	"PATTERNUGIT",
}
