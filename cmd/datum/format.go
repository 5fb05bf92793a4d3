package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"datum/internal/diag"
	"datum/internal/driver"
	"datum/internal/progress"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Format datum files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "check if files are properly formatted")
	fmtCmd.Flags().String("format", "text", "output format (text|json)")
	fmtCmd.Flags().Bool("stdout", false, "print formatted text to stdout instead of rewriting files")
	fmtCmd.Flags().Int("jobs", 0, "files formatted in parallel (0 = config or GOMAXPROCS)")
	fmtCmd.Flags().String("ui", "off", "progress display (auto|on|log|off)")
}

func runFmt(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()
	cmd.SilenceUsage = true

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := parseProgressMode(uiValue)
	if err != nil {
		return err
	}

	if writeToStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("fmt: --stdout is only supported with text output")
	}
	if outputFormat != "text" && outputFormat != "json" {
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}

	opts, _, err := driverOptions(cmd)
	if err != nil {
		return err
	}
	opts.Jobs = jobs
	defer printTimings(cmd.ErrOrStderr(), opts.Timer)

	fopts := driver.FormatOptions{
		Options: opts,
		Check:   check,
		Stdout:  writeToStdout,
	}
	busy := writeToStdout || outputFormat == "json" || slices.Contains(args, driver.StdinPath)
	plan := planProgress(mode, quietFlag(cmd), busy, isTerminal(os.Stdout), cmd.ErrOrStderr())
	var report *driver.FormatReport
	if plan.view {
		files, err := driver.CollectFiles(cmd.Context(), args, opts.Config)
		if err != nil {
			return err
		}
		report, err = runWithView("datum fmt", files, func(sink progress.Sink) (*driver.FormatReport, error) {
			viewOpts := fopts
			viewOpts.Progress = sink
			return driver.FormatPaths(cmd.Context(), files, viewOpts)
		})
		if err != nil {
			return err
		}
	} else {
		fopts.Progress = watchProgress(plan.sink)
		report, err = driver.FormatPaths(cmd.Context(), args, fopts)
		if err != nil {
			return err
		}
	}

	bag := diag.NewBag(0)
	for _, res := range report.Results {
		bag.Merge(res.Bag)
	}
	bag.Sort()
	printDiagnostics(cmd, bag, report.FileSet)

	var hasErrors, hasChanges bool
	out := cmd.OutOrStdout()
	switch outputFormat {
	case "json":
		if err := renderFmtJSON(out, report.Results, check); err != nil {
			return err
		}
		hasErrors, hasChanges = fmtSummary(report.Results)
	default:
		hasErrors, hasChanges = renderFmtText(cmd, report.Results, check)
	}

	if hasErrors {
		return fmt.Errorf("fmt: failed to format some files")
	}
	if check && hasChanges {
		return fmt.Errorf("fmt: formatting changes required")
	}
	return nil
}

func fmtSummary(results []driver.FormatResult) (hasErrors, hasChanges bool) {
	for _, res := range results {
		hasErrors = hasErrors || res.Err != nil
		hasChanges = hasChanges || res.Changed
	}
	return hasErrors, hasChanges
}

func renderFmtText(cmd *cobra.Command, results []driver.FormatResult, check bool) (hasErrors, hasChanges bool) {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	quiet := quietFlag(cmd)
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			fmt.Fprintf(errOut, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		if res.Formatted != nil {
			if _, err := out.Write(res.Formatted); err != nil {
				panic(err)
			}
			continue
		}
		if !res.Changed {
			continue
		}
		hasChanges = true
		if quiet {
			continue
		}
		var printErr error
		if check {
			_, printErr = fmt.Fprintln(out, res.Path)
		} else {
			_, printErr = fmt.Fprintf(out, "reformatted %s\n", res.Path)
		}
		if printErr != nil {
			panic(printErr)
		}
	}
	return hasErrors, hasChanges
}

func renderFmtJSON(w io.Writer, results []driver.FormatResult, check bool) error {
	type jsonResult struct {
		Path     string `json:"path"`
		Changed  bool   `json:"changed"`
		Error    string `json:"error,omitempty"`
		CheckRun bool   `json:"check"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, CheckRun: check}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
