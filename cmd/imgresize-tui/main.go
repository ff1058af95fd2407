package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/aagbemuko/imgresize/internal/config"
	"github.com/aagbemuko/imgresize/internal/tui"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "imgresize-tui", Level: log.WarnLevel})

	if err := tui.Run(config.DefaultSettings(), logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
