package logging_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jamesainslie/groom/pkg/groom/config"
	"github.com/jamesainslie/groom/pkg/groom/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    logging.Level
		wantErr bool
	}{
		{"debug", logging.LevelDebug, false},
		{"INFO", logging.LevelInfo, false},
		{"", logging.LevelInfo, false},
		{"warning", logging.LevelWarn, false},
		{"error", logging.LevelError, false},
		{"loud", logging.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := logging.ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, logging.ErrInvalidLevel))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "debug", logging.LevelDebug.String())
	assert.Equal(t, "warn", logging.LevelWarn.String())
	assert.Equal(t, "unknown", logging.Level(42).String())
}

// Tests below share global logging state and must not run in parallel.

func TestInit_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "groom.log")

	require.NoError(t, logging.Init(logging.Config{Level: "debug", Path: path}))
	defer func() { require.NoError(t, logging.Close()) }()

	logging.Get("scanner").Info("scan started", "root", "/tmp/project")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "scan started")
	assert.Contains(t, string(data), "scanner")
	assert.Contains(t, string(data), "/tmp/project")
}

func TestInit_InvalidLevel(t *testing.T) {
	err := logging.Init(logging.Config{Level: "nope", Path: filepath.Join(t.TempDir(), "x.log")})
	require.Error(t, err)
}

func TestGet_RefreshesCachedLoggers(t *testing.T) {
	require.NoError(t, logging.Close())

	cached := logging.Get("manifest")
	cached.Info("before init is discarded")

	path := filepath.Join(t.TempDir(), "groom.log")
	require.NoError(t, logging.Init(logging.Config{Level: "info", Path: path}))
	defer func() { require.NoError(t, logging.Close()) }()

	assert.Same(t, cached, logging.Get("manifest"))
	cached.Info("after init is written")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "before init")
	assert.Contains(t, string(data), "after init is written")
}

func TestConsoleLevel(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "groom.log")

	require.NoError(t, logging.Init(logging.Config{
		Level:        "debug",
		Path:         path,
		ConsoleLevel: "warn",
		Console:      &console,
	}))
	defer func() { require.NoError(t, logging.Close()) }()

	logger := logging.Get("console-test")
	logger.Info("quiet line")
	logger.Warn("loud line")

	assert.NotContains(t, console.String(), "quiet line")
	assert.Contains(t, console.String(), "loud line")
}

func TestWithRun_TagsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "groom.log")
	require.NoError(t, logging.Init(logging.Config{Level: "info", Path: path}))
	defer func() { require.NoError(t, logging.Close()) }()

	logging.WithRun("run-1234")
	logging.Get("cli").Info("tagged")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "run=run-1234")
}

func TestDefaultConfig(t *testing.T) {
	cfg := logging.DefaultConfig()

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, filepath.Join(config.StateDir(), "groom.log"), cfg.Path)
	assert.Equal(t, logging.DefaultLogPath(), cfg.Path)
	assert.Equal(t, config.DefaultLogMaxSize, cfg.MaxSize)
	assert.Equal(t, config.DefaultLogMaxBackups, cfg.MaxBackups)
	assert.Equal(t, config.DefaultLogMaxAge, cfg.MaxAge)
	assert.True(t, cfg.Compress)
	assert.Empty(t, cfg.ConsoleLevel)
}
