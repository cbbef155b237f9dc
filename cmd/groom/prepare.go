package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jamesainslie/groom/cmd/groom/tui"
	"github.com/jamesainslie/groom/pkg/groom/signature"
	"github.com/spf13/afero"
)

var syncChoices = []tui.Choice{
	{Key: "Y", Label: "create missing files and sync manifest.json with package.json"},
	{Key: "N", Label: "leave the project files alone"},
}

var searchChoices = []tui.Choice{
	{Key: "Y", Label: "default signatures plus your own"},
	{Key: "N", Label: "default signatures only"},
	{Key: "C", Label: "your own signatures only"},
}

// spinnerEnabled is cleared in tests so searches run without a terminal.
var spinnerEnabled = true

// prepare runs the interactive flow. The manifest step and the search are
// independent: either may be declined, and a failed sync does not prevent
// the search.
func prepare(ctx context.Context, w io.Writer, p tui.Prompter) error {
	answer, err := p.Choose("Sync the manifest with package.json?", syncChoices)
	if err != nil {
		return err
	}
	if answer == "Y" {
		if err := syncProject(ctx, w, afero.NewOsFs(), true); err != nil {
			printError("%v", err)
		}
	}

	answer, err = p.Choose("Search for signatures?", searchChoices)
	if err != nil {
		return err
	}

	policy, ok, err := promptPolicy(p, answer)
	if err != nil {
		return err
	}
	if !ok {
		printInfo("Search skipped")
		return nil
	}

	return executeSearch(ctx, w, cfg.Search.Root, policy, spinnerEnabled)
}

// promptPolicy turns the search answer into a signature policy, asking for
// the signatures when the answer needs them. ok is false when the search is
// skipped.
func promptPolicy(p tui.Prompter, answer string) (signature.Policy, bool, error) {
	switch answer {
	case "N":
		return signature.KeepDefaults(), true, nil
	case "Y", "C":
	default:
		return signature.Policy{}, false, nil
	}

	value, ok, err := p.Input("Signatures (comma separated)", "TOKEN, SECRET")
	if err != nil {
		return signature.Policy{}, false, err
	}
	if !ok {
		return signature.Policy{}, false, nil
	}

	policy, err := signature.ParsePolicy(answer, parseCommaSeparated(value))
	if err != nil {
		return signature.Policy{}, false, fmt.Errorf("invalid answer %q: %w", answer, err)
	}
	return policy, true, nil
}
