package main

import (
	"context"
	"os"
	"os/signal"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCommand(version).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
