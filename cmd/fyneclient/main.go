package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pr1vateer/libretictactoe/config"
	"github.com/pr1vateer/libretictactoe/fynexoxo"
)

func main() {
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err == nil {
		err = run(context.Background(), cfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	logger := cfg.NewLogger(os.Stdout)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		// catch signals, canceling context to cause cleanup
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-ctx.Done():
		case sig := <-ch:
			logger.Trace().Str("sig", sig.String()).Msg("caught signal")
			fynexoxo.Shutdown()
			cancel()
		}
	}()
	return fynexoxo.Run(ctx, logger, cfg)
}
