package main

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/jamesainslie/groom/pkg/groom/manifest"
	"github.com/jamesainslie/groom/pkg/groom/output"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var setupOnly bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Create missing project files and sync the manifest",
	Long: `Sync creates the settings file and manifest when they are missing, then
compares the manifest with package.json and rebuilds it when any mapped field
differs. The previous manifest is copied to the backup file first.

Mapped fields (manifest <- package):
  id <- name, name <- displayName, description <- description,
  author <- author.name, authorUrl <- author.url, license <- license,
  version <- version`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&setupOnly, "setup-only", false, "only create missing files, do not compare")
	syncCmd.Flags().String("dir", "", "project directory (default: current directory)")
	syncCmd.Flags().String("package", "", "package file name")
	syncCmd.Flags().String("manifest", "", "manifest file name")
	syncCmd.Flags().String("backup", "", "manifest backup file name")
	syncCmd.Flags().String("env-file", "", "settings file name")

	_ = v.BindPFlag("manifest.dir", syncCmd.Flags().Lookup("dir"))
	_ = v.BindPFlag("manifest.package", syncCmd.Flags().Lookup("package"))
	_ = v.BindPFlag("manifest.path", syncCmd.Flags().Lookup("manifest"))
	_ = v.BindPFlag("manifest.backup", syncCmd.Flags().Lookup("backup"))
	_ = v.BindPFlag("manifest.env_file", syncCmd.Flags().Lookup("env-file"))

	rootCmd.AddCommand(syncCmd)
}

// runSync executes the sync command.
func runSync(cmd *cobra.Command, args []string) error {
	return syncProject(cmd.Context(), cmd.OutOrStdout(), afero.NewOsFs(), !setupOnly)
}

// syncProject runs setup, and the manifest comparison when sync is set, then
// writes the formatted outcome to w.
func syncProject(ctx context.Context, w io.Writer, fs afero.Fs, sync bool) error {
	formatter, err := output.Get(cfg.Output)
	if err != nil {
		return fmt.Errorf("unknown output format %q: available formats are %v", cfg.Output, output.Available())
	}

	s := manifest.New(manifest.Paths{
		Dir:      cfg.Manifest.Dir,
		EnvFile:  cfg.Manifest.EnvFile,
		Manifest: cfg.Manifest.Path,
		Package:  cfg.Manifest.Package,
		Backup:   cfg.Manifest.Backup,
	}, fs)

	printVerbose("Syncing %s from %s", s.Paths().ManifestPath(), s.Paths().PackagePath())

	outcome, err := s.Run(ctx, sync)
	if err != nil {
		return fmt.Errorf("manifest sync failed: %w", err)
	}

	var buf bytes.Buffer
	if err := formatter.FormatSync(&buf, output.FromSync(outcome)); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
