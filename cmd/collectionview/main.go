package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"collectionview/internal/cli"
)

var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.New(version).ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}
