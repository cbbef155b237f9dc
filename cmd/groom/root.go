package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/jamesainslie/groom/cmd/groom/tui"
	"github.com/jamesainslie/groom/pkg/groom/config"
	"github.com/jamesainslie/groom/pkg/groom/logging"
	"github.com/jamesainslie/groom/pkg/groom/output"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	v       = config.New()
	cfg     *config.Config

	rootCmd = &cobra.Command{
		Use:   "groom",
		Short: "Search a project for signatures and keep its manifest in sync",
		Long: `Groom prepares a project directory: it creates missing settings and
manifest files, syncs manifest.json with package.json, and searches the tree
for lines containing any of a set of signatures.

Run without arguments in a terminal to be asked what to do.

Examples:
  groom                          # Interactive prepare flow
  groom search                   # Search the current directory for the default signatures
  groom search -S token,secret   # Search for your own signatures only
  groom search --mode append -S token ~/src/app
  groom sync                     # Create missing files and sync the manifest
  groom sync --setup-only        # Only create missing files
  groom config show              # Show configuration`,
		Args:              cobra.NoArgs,
		PersistentPreRunE: initApp,
		RunE:              runPrepare,
		SilenceUsage:      true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./.groom/config.yaml or ~/.config/groom/config.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output format: "+fmt.Sprint(output.Available()))
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "minimal output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug output")

	_ = v.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = v.BindPFlag("no_color", rootCmd.PersistentFlags().Lookup("no-color"))
	_ = v.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = v.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initApp reads configuration, starts logging and loads the project
// settings file before any command runs.
func initApp(cmd *cobra.Command, args []string) error {
	if err := config.Read(v, cfgFile); err != nil {
		return err
	}

	c, err := config.Decode(v)
	if err != nil {
		return err
	}
	cfg = c

	output.ConfigureColor(cfg.NoColor)

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	if cfg.Logging.Path != "" {
		logCfg.Path = cfg.Logging.Path
	}
	logCfg.MaxSize = cfg.Logging.MaxSize
	logCfg.MaxBackups = cfg.Logging.MaxBackups
	logCfg.MaxAge = cfg.Logging.MaxAge
	logCfg.Compress = cfg.Logging.Compress
	if cfg.Verbose && !cfg.Quiet {
		logCfg.ConsoleLevel = "debug"
	}
	if err := logging.Init(logCfg); err != nil {
		// Logging is best effort; commands still work without a log file.
		printVerbose("Logging disabled: %v", err)
	}
	logging.WithRun(uuid.NewString())

	envFile := filepath.Join(cfg.Manifest.Dir, cfg.Manifest.EnvFile)
	if err := config.LoadEnvFile(envFile); err != nil {
		return err
	}

	if used := v.ConfigFileUsed(); used != "" {
		printVerbose("Using config file %s", used)
	}
	return nil
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command
// context so an interrupted search can still report what it found.
func Execute() error {
	defer func() { _ = logging.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

// isInteractive is replaced in tests.
var isInteractive = tui.IsInteractive

// runPrepare runs the interactive flow, or prints help when there is no
// terminal to prompt on.
func runPrepare(cmd *cobra.Command, args []string) error {
	if !isInteractive() {
		return cmd.Help()
	}
	return prepare(cmd.Context(), cmd.OutOrStdout(), tui.NewPrompter())
}

// getVerbose returns true if verbose mode is enabled.
func getVerbose() bool {
	return v.GetBool("verbose")
}

// getQuiet returns true if quiet mode is enabled.
func getQuiet() bool {
	return v.GetBool("quiet")
}

// printVerbose prints a message if verbose mode is enabled.
func printVerbose(format string, args ...interface{}) {
	if getVerbose() && !getQuiet() {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

// printInfo prints a message if quiet mode is not enabled.
func printInfo(format string, args ...interface{}) {
	if !getQuiet() {
		fmt.Printf(format+"\n", args...)
	}
}

// printError prints an error message to stderr.
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
