// Package main provides the entry point for the tablemap CLI tool.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tablemap/tablemap/cmd/tablemap/cmd"
	"github.com/tablemap/tablemap/pkg/logging"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Execute(ctx, version, commit, date); err != nil {
		logging.Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
