// Package appshell owns process concerns: signals, argv and the exit status.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// ExitInterrupted is reported when a signal canceled a run that would
// otherwise have succeeded.
const ExitInterrupted = 130

// Main runs run with a context canceled on SIGINT/SIGTERM and exits with its
// status. No arguments at all shows help.
func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	os.Exit(runWith(run, os.Args[1:], os.Stdout, os.Stderr))
}

func runWith(run func(context.Context, []string, io.Writer, io.Writer) int, argv []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(argv) == 0 {
		argv = []string{"--help"}
	}
	code := run(ctx, argv, stdout, stderr)
	if ctx.Err() != nil && code == 0 {
		code = ExitInterrupted
	}
	return code
}
