package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	errs "imgcollect/pkg/errors"
	"imgcollect/pkg/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		ui.NewPrinter(os.Stderr, true, false).Error("Error", err)
		stop()
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 for bad arguments and 1 for everything else
func exitCode(err error) int {
	if errs.IsInvalidArgument(err) {
		return 2
	}
	return 1
}
