//go:build stave

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
)

// Default target when running `stave` with no arguments.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]interface{}{
	"b": Build,
	"t": Test,
	"l": Lint,
	"i": Install,
	"c": Clean,
}

const (
	binaryName   = "groom"
	mainPkg      = "./cmd/groom"
	binDir       = "bin"
	coverProfile = "coverage.out"
)

// All runs the complete build pipeline.
func All() error {
	st.Deps(Lint, Test)
	st.Deps(Build)
	return nil
}

// Build compiles the groom binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating bin directory: %w", err)
	}

	return sh.RunV("go", "build", "-ldflags", buildLdflags(), "-o", exe(filepath.Join(binDir, binaryName)), mainPkg)
}

// Install builds groom and copies it to GOBIN.
func Install() error {
	st.Deps(Build)

	bin, err := goBin()
	if err != nil {
		return err
	}

	src := exe(filepath.Join(binDir, binaryName))
	dst := exe(filepath.Join(bin, binaryName))

	if st.Verbose() {
		fmt.Printf("Installing %s to %s\n", src, dst)
	}

	return sh.Copy(dst, src)
}

// Uninstall removes the installed groom binary.
func Uninstall() error {
	bin, err := goBin()
	if err != nil {
		return err
	}

	target := exe(filepath.Join(bin, binaryName))
	if _, err := os.Stat(target); os.IsNotExist(err) {
		if st.Verbose() {
			fmt.Printf("Binary not found at %s, nothing to uninstall\n", target)
		}
		return nil
	}

	return os.Remove(target)
}

// Test runs all tests with race detection and writes a coverage profile.
func Test() error {
	return sh.RunV("go", "test", "-race", "-coverprofile="+coverProfile, "./...")
}

// Cover opens the coverage report from the last test run.
func Cover() error {
	st.Deps(Test)
	return sh.RunV("go", "tool", "cover", "-func="+coverProfile)
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts and the coverage profile.
func Clean() error {
	if err := sh.Rm(binDir + "/"); err != nil {
		return err
	}
	return sh.Rm(coverProfile)
}

// Fmt formats all Go code.
func Fmt() error {
	if err := sh.Run("gofmt", "-w", "."); err != nil {
		return fmt.Errorf("running gofmt: %w", err)
	}
	return sh.Run("goimports", "-w", ".")
}

// Tidy runs go mod tidy.
func Tidy() error {
	return sh.RunV("go", "mod", "tidy")
}

// goBin returns GOBIN, falling back to GOPATH/bin and then /usr/local/bin.
func goBin() (string, error) {
	gocmd := st.GoCmd()

	bin, err := sh.Output(gocmd, "env", "GOBIN")
	if err != nil {
		return "", fmt.Errorf("determining GOBIN: %w", err)
	}
	if bin != "" {
		return bin, nil
	}

	gopath, err := sh.Output(gocmd, "env", "GOPATH")
	if err != nil {
		return "", fmt.Errorf("determining GOPATH: %w", err)
	}
	if gopath == "" {
		return "/usr/local/bin", nil
	}
	return filepath.Join(gopath, "bin"), nil
}

func exe(path string) string {
	if runtime.GOOS == "windows" {
		return path + ".exe"
	}
	return path
}

// buildLdflags returns ldflags for version injection.
func buildLdflags() string {
	version := "dev"
	commit := "unknown"
	date := time.Now().UTC().Format(time.RFC3339)

	if v, err := sh.Output("git", "describe", "--tags", "--always"); err == nil && v != "" {
		version = strings.TrimSpace(v)
	}

	if c, err := sh.Output("git", "rev-parse", "--short", "HEAD"); err == nil && c != "" {
		commit = strings.TrimSpace(c)
	}

	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s", version, commit, date)
}
