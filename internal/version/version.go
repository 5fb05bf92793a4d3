package version

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
)

// Version information for the datum CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.3.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	nameColor    = color.New(color.FgCyan, color.Bold)
	versionColor = color.New(color.FgGreen, color.Bold)
	dimColor     = color.New(color.Faint)
)

// Banner returns the one-line version string printed by `datum version`.
// Colors follow fatih/color's global NoColor switch.
func Banner() string {
	s := nameColor.Sprint("datum") + " " + versionColor.Sprint(Version)
	if GitCommit != "" {
		s += dimColor.Sprintf(" (%s)", short(GitCommit))
	}
	return s
}

// Details returns the multi-line form used by `datum version --verbose`.
func Details() string {
	s := Banner() + "\n"
	if BuildDate != "" {
		s += fmt.Sprintf("built:   %s\n", BuildDate)
	}
	s += fmt.Sprintf("go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return s
}

func short(commit string) string {
	if len(commit) > 12 {
		return commit[:12]
	}
	return commit
}
