package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jamesainslie/groom/cmd/groom/tui"
	"github.com/jamesainslie/groom/pkg/groom/config"
	"github.com/jamesainslie/groom/pkg/groom/output"
	"github.com/jamesainslie/groom/pkg/groom/scanner"
	"github.com/jamesainslie/groom/pkg/groom/signature"
	"github.com/spf13/cobra"
)

var signatureFlags []string

var searchCmd = &cobra.Command{
	Use:   "search [path]",
	Short: "Search a directory tree for signatures",
	Long: `Search walks a directory tree depth first and reports every line that
contains one of the signatures, ignoring case.

Without --signature the configured defaults are used. With it, --mode decides
how the given values combine with the defaults:
  replace  search only for the given signatures (default)
  append   search for the defaults and the given signatures
  keep     ignore the given signatures and search for the defaults

Directories named in --exclude are never entered. Names containing *, ?, [ or {
are matched as glob patterns against the directory name.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringSliceVarP(&signatureFlags, "signature", "S", nil, "signatures to search for (comma separated or repeated)")
	searchCmd.Flags().String("mode", "", "how --signature combines with the defaults: replace, append, keep")
	searchCmd.Flags().StringSliceP("exclude", "e", nil, "directory names to skip (replaces the configured list)")
	searchCmd.Flags().String("encoding", "", "text encoding of scanned files, e.g. utf-8, latin1")

	_ = v.BindPFlag("search.mode", searchCmd.Flags().Lookup("mode"))
	_ = v.BindPFlag("search.exclude", searchCmd.Flags().Lookup("exclude"))
	_ = v.BindPFlag("search.encoding", searchCmd.Flags().Lookup("encoding"))

	rootCmd.AddCommand(searchCmd)
}

// runSearch executes the search command.
func runSearch(cmd *cobra.Command, args []string) error {
	root := cfg.Search.Root
	if len(args) > 0 {
		expanded, err := config.ExpandPath(args[0])
		if err != nil {
			return err
		}
		root = expanded
	}

	policy, err := searchPolicy(cfg.Search.Mode, signatureFlags)
	if err != nil {
		return err
	}

	return executeSearch(cmd.Context(), cmd.OutOrStdout(), root, policy, false)
}

// searchPolicy builds the signature policy for the search command. Without
// any --signature values the defaults are searched whatever the mode.
func searchPolicy(mode string, entries []string) (signature.Policy, error) {
	if len(entries) == 0 {
		if _, err := signature.ParsePolicy(mode, nil); err != nil {
			return signature.Policy{}, err
		}
		return signature.KeepDefaults(), nil
	}

	policy, err := signature.ParsePolicy(mode, entries)
	if err != nil {
		return signature.Policy{}, err
	}
	if policy.Kind() == signature.KindKeepDefaults {
		printVerbose("Mode %q ignores --signature values", mode)
	}
	return policy, nil
}

// executeSearch walks root for the signatures selected by policy and writes
// the formatted result to w. With spinner set, progress is shown while the
// walk runs. An interrupted walk still prints what it found.
func executeSearch(ctx context.Context, w io.Writer, root string, policy signature.Policy, spinner bool) error {
	formatter, err := output.Get(cfg.Output)
	if err != nil {
		return fmt.Errorf("unknown output format %q: available formats are %v", cfg.Output, output.Available())
	}

	sigs := signature.New(cfg.Search.Signatures, policy)
	printVerbose("Searching %s for %v (%s)", root, sigs.Strings(), policy)

	opts := scanner.DefaultOptions()
	opts.Root = root
	opts.Signatures = sigs
	if cfg.Search.Exclude != nil {
		opts.Exclude = cfg.Search.Exclude
	}
	if cfg.Search.Encoding != "" {
		opts.Encoding = cfg.Search.Encoding
	}
	opts.OnError = func(e scanner.ScanError) {
		printVerbose("Skipped %s: %s", e.Path, e.Message())
	}

	var result *scanner.Result
	if spinner {
		err = tui.RunSearch(ctx, root, func(ctx context.Context, progress func(scanner.Progress)) error {
			opts.OnProgress = progress
			s, err := scanner.New(opts)
			if err != nil {
				return err
			}
			result, err = s.Scan(ctx)
			return err
		})
	} else {
		var s *scanner.Scanner
		s, err = scanner.New(opts)
		if err != nil {
			return err
		}
		result, err = s.Scan(ctx)
	}

	interrupted := false
	if err != nil {
		if result == nil || !errors.Is(err, context.Canceled) {
			return fmt.Errorf("search failed: %w", err)
		}
		interrupted = true
		printInfo("Search cancelled, showing partial results")
	}

	var buf bytes.Buffer
	res := output.FromScan(result, sigs.Strings(), cfg.Search.Exclude, interrupted)
	if err := formatter.FormatSearch(&buf, res); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
