package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"datum/internal/progress"
	"datum/internal/ui"
)

type runOutcome[T any] struct {
	value T
	err   error
}

// runWithView runs fn in the background, feeding its progress into the
// interactive view over files, and returns fn's result once both are done.
func runWithView[T any](title string, files []string, fn func(progress.Sink) (T, error)) (T, error) {
	events := make(chan progress.Event, 256)
	outcomeCh := make(chan runOutcome[T], 1)

	go func() {
		value, err := fn(watchProgress(progress.ChannelSink{Ch: events}))
		outcomeCh <- runOutcome[T]{value: value, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// после ctrl+c модель больше не читает канал
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.value, uiErr
	}
	return outcome.value, outcome.err
}
