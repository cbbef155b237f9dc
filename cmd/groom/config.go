package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/jamesainslie/groom/pkg/groom/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage groom configuration settings.

Configuration is loaded from the first file found:
  1. ./.groom/config.yaml
  2. $XDG_CONFIG_HOME/groom/config.yaml (if set)
  3. ~/.config/groom/config.yaml

Environment variables override config file settings using the GROOM_ prefix:
  GROOM_SEARCH_MODE=append
  GROOM_SEARCH_EXCLUDE=node_modules,dist
  GROOM_OUTPUT=json`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration merged from all sources.`,
	RunE:  runConfigShow,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file",
	Long: `Open the user configuration file in your default editor.

The editor is determined by:
  1. $VISUAL environment variable
  2. $EDITOR environment variable
  3. Falls back to 'vi'

If the config file doesn't exist, a default one will be created first.`,
	RunE: runConfigEdit,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	Long:  `Create a default user configuration file if one doesn't exist.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	Long:  `Display the path to the user configuration file.`,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// runConfigShow displays the current configuration.
func runConfigShow(cmd *cobra.Command, args []string) error {
	return showConfig(cmd.OutOrStdout(), v.ConfigFileUsed(), v.AllSettings(), os.Environ())
}

// showConfig writes the config file in use, the merged settings as YAML and
// any GROOM_ environment overrides.
func showConfig(w io.Writer, configFile string, settings map[string]any, environ []string) error {
	if configFile != "" {
		fmt.Fprintf(w, "Config file: %s\n\n", configFile)
	} else {
		fmt.Fprintln(w, "Config file: (using defaults, no file found)")
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Current Configuration:")
	fmt.Fprintln(w, "----------------------")
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(settings); err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	fmt.Fprintln(w, "\nEnvironment Overrides:")
	fmt.Fprintln(w, "----------------------")
	var overrides []string
	for _, kv := range environ {
		if strings.HasPrefix(kv, config.EnvPrefix+"_") {
			overrides = append(overrides, kv)
		}
	}
	sort.Strings(overrides)
	if len(overrides) == 0 {
		fmt.Fprintln(w, "(none)")
	}
	for _, kv := range overrides {
		fmt.Fprintln(w, kv)
	}

	return nil
}

// runConfigEdit opens the config file in an editor.
func runConfigEdit(cmd *cobra.Command, args []string) error {
	configPath, err := config.ConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if _, err := config.WriteDefault(configPath); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	editor := os.Getenv("VISUAL")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vi"
	}

	printVerbose("Opening %s with %s", configPath, editor)

	editorCmd := exec.Command(editor, configPath)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("editor command failed: %w", err)
	}

	return nil
}

// runConfigInit creates a default config file.
func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath, err := config.ConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	created, err := config.WriteDefault(configPath)
	if err != nil {
		printError("Could not write %s", configPath)
		return fmt.Errorf("failed to create config file: %w", err)
	}
	if !created {
		printInfo("Config file already exists: %s", configPath)
		printInfo("Use 'groom config edit' to modify it.")
		return nil
	}

	printInfo("Created default config file: %s", configPath)
	return nil
}

// runConfigPath shows the config file path.
func runConfigPath(cmd *cobra.Command, args []string) error {
	configPath, err := config.ConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), configPath)

	if _, err := os.Stat(configPath); err == nil {
		printVerbose("File exists")
	} else if os.IsNotExist(err) {
		printVerbose("File does not exist (will use defaults)")
	}

	return nil
}
