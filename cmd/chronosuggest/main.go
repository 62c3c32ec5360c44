package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chronosuggest/engine/adapter/cli"
	chronoapp "github.com/chronosuggest/engine/internal/app"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	container, err := chronoapp.NewContainer(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize:", err)
		os.Exit(1)
	}
	defer container.Close()

	cli.SetLogger(container.Logger)
	cli.SetContainer(container)
	cli.Execute()
}
