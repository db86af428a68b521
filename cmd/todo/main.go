package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Makepad-fr/todosql/internal/cli"
	"github.com/Makepad-fr/todosql/internal/config"
	"github.com/Makepad-fr/todosql/internal/logging"
	"github.com/Makepad-fr/todosql/internal/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cfg, err := config.Load()
	if err != nil {
		ui.Fail(os.Stderr, err.Error())
		stop()
		os.Exit(cli.ExitError)
	}
	ui.SetTheme(cfg.Theme)
	ui.SetColor(cfg.Color)

	// Hand the remaining args to the CLI runner.
	code := cli.Run(ctx, os.Args[1:], cli.Options{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat),
	})
	stop()
	os.Exit(code)
}
