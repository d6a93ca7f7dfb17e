package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/flashdeck/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	app := &cli.Command{
		Name:     "flashdeck",
		Usage:    "Study vocabulary flashcards in the terminal",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		switch {
		case errors.Is(err, shared.ErrLoadFailed):
			logger.Error("could not load vocabulary", "error", err)
			os.Exit(1)
		case errors.Is(err, shared.ErrMissingArgument),
			errors.Is(err, shared.ErrInvalidArgument),
			errors.Is(err, shared.ErrInvalidFlag):
			logger.Error("invalid usage", "error", err)
			os.Exit(2)
		default:
			logger.Fatalf("application error: %v", err)
		}
	}
}
