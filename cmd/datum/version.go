package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"datum/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	Go        string `json:"go,omitempty"`
}

var (
	versionFormat  string
	versionVerbose bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionVerbose, "verbose", false, "include build date and toolchain")
	versionCmd.Flags().StringVar(&versionFormat, "format", "text", "output format (text|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show datum version",
	RunE: func(cmd *cobra.Command, args []string) error {
		switch strings.ToLower(versionFormat) {
		case "json":
			return renderVersionJSON(cmd.OutOrStdout(), versionVerbose)
		case "text", "pretty":
			if versionVerbose {
				fmt.Fprint(cmd.OutOrStdout(), version.Details())
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), version.Banner())
			}
			return nil
		default:
			return fmt.Errorf("unsupported format %q (must be text or json)", versionFormat)
		}
	},
}

func renderVersionJSON(out io.Writer, verbose bool) error {
	v := strings.TrimSpace(version.Version)
	if v == "" {
		v = "dev"
	}
	payload := versionPayload{
		Tool:      "datum",
		Version:   v,
		GitCommit: strings.TrimSpace(version.GitCommit),
	}
	if verbose {
		payload.BuildDate = strings.TrimSpace(version.BuildDate)
		payload.Go = runtime.Version()
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
