package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/fraudlens/fraudlens/internal/cli"
	"github.com/fraudlens/fraudlens/pkg/fraudlens"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(fraudlens.ExitPanic)
		}
	}()

	if os.Getenv("FRAUDLENS_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(fraudlens.ExitCodeForError(err))
	}
}
