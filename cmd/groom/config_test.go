package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowConfig(t *testing.T) {
	settings := map[string]any{
		"output": "plain",
		"search": map[string]any{"mode": "append"},
	}
	environ := []string{"HOME=/home/ada", "GROOM_SEARCH_MODE=append", "GROOM_OUTPUT=plain"}

	var out bytes.Buffer
	require.NoError(t, showConfig(&out, "/etc/groom/config.yaml", settings, environ))

	got := out.String()
	assert.Contains(t, got, "Config file: /etc/groom/config.yaml")
	assert.Contains(t, got, "output: plain")
	assert.Contains(t, got, "search:\n  mode: append")
	assert.Contains(t, got, "GROOM_OUTPUT=plain\nGROOM_SEARCH_MODE=append\n")
	assert.NotContains(t, got, "HOME=")
}

func TestShowConfig_Defaults(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, showConfig(&out, "", map[string]any{}, nil))

	assert.Contains(t, out.String(), "(using defaults, no file found)")
	assert.Contains(t, out.String(), "(none)")
}

func TestRootCommandTree(t *testing.T) {
	want := []string{"config", "search", "sync", "version"}
	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}
