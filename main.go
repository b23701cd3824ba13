// Package main is the entry point for the rendimento CLI application.
package main

import (
	"fmt"
	"os"

	"github.com/wasilva/rendimento-code-generator/cmd"
	"github.com/wasilva/rendimento-code-generator/internal/logging"
)

func main() {
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logging.Info("starting rendimento", "version", "1.0.0", "log_level", logLevel)

	if err := cmd.Execute(); err != nil {
		logging.Error("command execution failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
