package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jamesainslie/groom/pkg/groom/config"
	"github.com/stretchr/testify/require"
)

// useConfig installs the default configuration with plain output for the
// duration of a test. mutate may adjust it.
func useConfig(t *testing.T, mutate func(c *config.Config)) {
	t.Helper()

	c, err := config.Decode(config.New())
	require.NoError(t, err)
	c.Output = "plain"
	if mutate != nil {
		mutate(c)
	}

	prev := cfg
	cfg = c
	t.Cleanup(func() { cfg = prev })
}

// writeTree creates files under root from a map of relative path to content.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}
