package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"datum/internal/diagfmt"
	"datum/internal/driver"
	"datum/internal/progress"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <path> [path...]",
	Short: "Check datum files for errors",
	Long: `Check reads every datum file under the given paths in parallel and
reports syntax errors. Results are cached by content and configuration.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "files checked in parallel (0 = config or GOMAXPROCS)")
	checkCmd.Flags().String("ui", "auto", "progress display (auto|on|log|off)")
	checkCmd.Flags().Bool("no-cache", false, "ignore and do not update the result cache")
	checkCmd.Flags().Bool("clear-cache", false, "drop cached results before checking")
	checkCmd.Flags().String("format", "pretty", "diagnostics format (pretty|short|json)")
	checkCmd.Flags().Bool("fmt", false, "also report files that datum fmt would change")
}

func runCheck(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()
	cmd.SilenceUsage = true

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := parseProgressMode(uiValue)
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch outputFormat {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("unknown format: %s", outputFormat)
	}
	withFmt, err := cmd.Flags().GetBool("fmt")
	if err != nil {
		return fmt.Errorf("failed to get fmt flag: %w", err)
	}

	opts, manifest, err := driverOptions(cmd)
	if err != nil {
		return err
	}
	opts.Jobs = jobs
	opts.CheckFormat = withFmt
	defer printTimings(cmd.ErrOrStderr(), opts.Timer)

	if manifest.Config.Check.Cache && !noCache {
		dir := manifest.Config.Check.CacheDir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(manifest.Root, dir)
		}
		cache, err := driver.OpenDiskCache(dir)
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		if clearCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
		}
		opts.Cache = cache
	}

	plan := planProgress(mode, quietFlag(cmd), outputFormat == "json" || slices.Contains(args, driver.StdinPath),
		isTerminal(os.Stdout), cmd.ErrOrStderr())
	var report *driver.CheckReport
	if plan.view {
		files, err := driver.CollectFiles(cmd.Context(), args, opts.Config)
		if err != nil {
			return err
		}
		report, err = runWithView("datum check", files, func(sink progress.Sink) (*driver.CheckReport, error) {
			viewOpts := opts
			viewOpts.Progress = sink
			return driver.CheckPaths(cmd.Context(), files, viewOpts)
		})
		if err != nil {
			return err
		}
	} else {
		opts.Progress = watchProgress(plan.sink)
		report, err = driver.CheckPaths(cmd.Context(), args, opts)
		if err != nil {
			return err
		}
	}

	bag := report.Diagnostics()
	switch outputFormat {
	case "json":
		if err := diagfmt.JSON(cmd.OutOrStdout(), bag, report.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			IncludeNotes:     true,
		}); err != nil {
			return err
		}
	case "short":
		diagfmt.Short(cmd.OutOrStdout(), bag, report.FileSet, diagfmt.PathModeRelative)
	default:
		printDiagnostics(cmd, bag, report.FileSet)
	}

	if !quietFlag(cmd) && outputFormat != "json" {
		cached := 0
		for _, res := range report.Results {
			if res.Cached {
				cached++
			}
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "checked %d files (%d cached), %d failed\n", len(report.Results), cached, report.Failed())
	}
	if report.Failed() > 0 {
		return fmt.Errorf("check: %d files have errors", report.Failed())
	}
	return nil
}
