package main

import (
	"fmt"
	"io"

	"datum/internal/observ"
)

func printTimings(out io.Writer, timer *observ.Timer) {
	if out == nil || timer == nil {
		return
	}
	summary := timer.Summary()
	if summary == "" {
		return
	}
	if _, err := fmt.Fprint(out, summary); err != nil {
		panic(err)
	}
}
