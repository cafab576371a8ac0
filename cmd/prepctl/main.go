package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"prep-backend/internal/bootstrap"
	"prep-backend/internal/cli"
	"prep-backend/internal/shared/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	build := func(ctx context.Context, withRouter bool) (*bootstrap.App, error) {
		return bootstrap.Build(ctx, cfg, withRouter)
	}

	if err := cli.Execute(ctx, build, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
