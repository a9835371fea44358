package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"collectionview/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.New(version).ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}
