package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"datum/internal/diagfmt"
	"datum/internal/driver"
	"datum/internal/format"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.datum",
	Short: "Parse a datum file and print its values",
	Long: `Parse reads a datum file ("-" for stdin) and prints its top-level values
as a tree, as JSON, or back as canonical datum text`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "tree", "output format (tree|json|datum)")
}

func runParse(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch outputFormat {
	case "tree", "json", "datum":
	default:
		return fmt.Errorf("unknown format: %s", outputFormat)
	}

	opts, _, err := driverOptions(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Parse(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	printDiagnostics(cmd, result.Bag, result.FileSet)
	defer printTimings(cmd.ErrOrStderr(), opts.Timer)

	out := cmd.OutOrStdout()
	switch outputFormat {
	case "json":
		err = diagfmt.FormatValuesJSON(out, result.Values)
	case "datum":
		_, err = out.Write(format.Document(result.Values, opts.Config.FormatOptions()))
	default:
		err = diagfmt.FormatValuesTree(out, result.Values)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		cmd.SilenceUsage = true
		return errors.New("parse: input has errors")
	}
	return nil
}
