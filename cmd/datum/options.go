package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"datum/internal/diag"
	"datum/internal/diagfmt"
	"datum/internal/driver"
	"datum/internal/observ"
	"datum/internal/project"
	"datum/internal/source"
)

// applyColorFlag sets the global color mode from --color.
func applyColorFlag(cmd *cobra.Command) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = !isTerminal(os.Stdout)
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	return mode == "on" || (mode == "auto" && isTerminal(f))
}

// loadManifest reads --config, or searches upwards from the working
// directory for datum.toml. Without a manifest the defaults apply.
func loadManifest(cmd *cobra.Command) (*project.Manifest, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return project.LoadFile(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	m, _, err := project.Load(wd)
	return m, err
}

// driverOptions builds the options shared by every subcommand from the
// persistent flags and the loaded config.
func driverOptions(cmd *cobra.Command) (driver.Options, *project.Manifest, error) {
	m, err := loadManifest(cmd)
	if err != nil {
		return driver.Options{}, nil, err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return driver.Options{}, nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	opts := driver.Options{
		Config:         m.Config,
		MaxDiagnostics: maxDiagnostics,
		Stdin:          cmd.InOrStdin(),
	}
	if showTimings {
		opts.Timer = observ.NewTimer()
	}
	return opts, m, nil
}

func quietFlag(cmd *cobra.Command) bool {
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	return quiet
}

// printDiagnostics writes bag to stderr in the pretty format.
func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	diagfmt.Pretty(cmd.ErrOrStderr(), bag, fs, diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		Context:   2,
		PathMode:  diagfmt.PathModeRelative,
		ShowNotes: true,
	})
}
