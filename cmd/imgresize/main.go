package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/aagbemuko/imgresize/internal/app"
	"github.com/aagbemuko/imgresize/internal/config"
	"github.com/aagbemuko/imgresize/internal/model"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "imgresize",
		Level:           log.WarnLevel,
	})

	settings := config.DefaultSettings()

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
		// A pending prompt blocks on stdin; a second signal exits right away.
		<-sigCh
		os.Exit(130)
	}()

	a, err := app.New(settings, os.Stdin, os.Stdout, logger)
	if err != nil {
		logger.Error("startup failed", "err", err)
		os.Exit(1)
	}

	stats, err := a.Run(ctx)
	if err != nil {
		os.Exit(exitCode(err, os.Stderr))
	}

	if stats.Failed > 0 {
		logger.Warn("some images could not be resized", "failed", stats.Failed, "total", stats.Total)
	}
}

// exitCode reports err on w and returns the process exit status.
// Exhausted retries were already announced by the prompt that gave up.
func exitCode(err error, w io.Writer) int {
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(w, "\nResize cancelled.")
		return 130
	}
	switch kind := model.KindOf(err); {
	case kind == model.RetriesExhausted:
	case kind.Fatal():
		fmt.Fprintf(w, "Exiting: %v\n", err)
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
	}
	return 1
}
