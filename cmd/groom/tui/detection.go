package tui

import (
	"os"

	"golang.org/x/term"
)

// ciEnvs are environment variables set by common CI systems.
var ciEnvs = []string{
	"CI",
	"CONTINUOUS_INTEGRATION",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"BUILDKITE",
	"JENKINS_HOME",
}

// IsInteractive reports whether prompts can be shown: stdin and stdout are
// terminals and no CI environment is detected.
func IsInteractive() bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return false
	}

	for _, env := range ciEnvs {
		if os.Getenv(env) != "" {
			return false
		}
	}

	return true
}
