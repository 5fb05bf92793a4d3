package main

import (
	"fmt"
	"io"
	"strings"

	"datum/internal/progress"
)

// progressMode is the --ui setting of check and fmt.
type progressMode string

const (
	progressAuto progressMode = "auto" // view on a terminal, silent otherwise
	progressView progressMode = "on"
	progressLog  progressMode = "log" // one line per finished file on stderr
	progressOff  progressMode = "off"
)

func parseProgressMode(value string) (progressMode, error) {
	switch mode := progressMode(strings.TrimSpace(strings.ToLower(value))); mode {
	case "":
		return progressAuto, nil
	case progressAuto, progressView, progressLog, progressOff:
		return mode, nil
	}
	return "", fmt.Errorf("invalid --ui value %q (expected auto|on|log|off)", value)
}

// progressPlan says how a run reports per-file progress: through the
// interactive view, or through sink.
type progressPlan struct {
	view bool
	sink progress.Sink
}

// planProgress resolves mode. The view needs a terminal and is never drawn
// over results written to stdout or while stdin is an input file.
func planProgress(mode progressMode, quiet, stdioBusy, stdoutTTY bool, logTo io.Writer) progressPlan {
	off := progressPlan{sink: progress.Discard}
	if quiet {
		return off
	}
	switch mode {
	case progressLog:
		return progressPlan{sink: &progress.LogSink{W: logTo}}
	case progressView:
		if stdioBusy {
			return progressPlan{sink: &progress.LogSink{W: logTo}}
		}
		return progressPlan{view: true}
	case progressAuto:
		if !stdioBusy && stdoutTTY {
			return progressPlan{view: true}
		}
	}
	return off
}

// watchProgress routes next through a tracker that the trace heartbeat
// reports from.
func watchProgress(next progress.Sink) progress.Sink {
	tr := &progress.Tracker{Next: next}
	activeHeartbeat.Watch(tr.Status)
	return tr
}
