package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"datum/internal/format"
	"datum/internal/pipeline"
	"datum/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create a datum.toml with default settings",
	Long: `Init writes a datum.toml manifest with the default settings and a small
example.datum file. If [path] is omitted, initializes the current directory.
A missing directory is created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

const exampleSource = `; example.datum
(greeting "hello, datum")
(numbers 1 -2 3.5 #i+inf.0)
(flags #t #f #nil)
'(quoted list)
`

// runInit resolves the target directory, refuses to overwrite an existing
// datum.toml, and writes the manifest plus an example file when none exists.
func runInit(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	target := "."
	if len(args) > 0 {
		target = args[0]
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return err
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	manifestPath := filepath.Join(target, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	cfg := project.Default()
	data, err := cfg.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	examplePath := filepath.Join(target, "example.datum")
	createdExample := false
	if _, err := os.Stat(examplePath); errors.Is(err, os.ErrNotExist) {
		// пример сразу в каноническом виде, чтобы datum check --fmt был чистым
		text, _, err := format.Source([]byte(exampleSource), pipeline.Config{}, cfg.FormatOptions())
		if err != nil {
			return fmt.Errorf("failed to render example: %w", err)
		}
		if err := os.WriteFile(examplePath, text, 0o600); err != nil {
			return fmt.Errorf("failed to write example.datum: %w", err)
		}
		createdExample = true
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized datum project in %s\n", rel)
	fmt.Fprintf(out, "  - %s\n", project.ManifestName)
	if createdExample {
		fmt.Fprintln(out, "  - example.datum")
	} else {
		fmt.Fprintln(out, "  - example.datum (existing)")
	}
	return nil
}
