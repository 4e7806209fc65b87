// Package main is the entry point for the comments CLI and API server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/evcraddock/comments/internal/cli"
)

func main() {
	os.Exit(run())
}

// run executes the command tree under a context cancelled by SIGINT or
// SIGTERM, so a running server shuts down gracefully.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}
	return 0
}
