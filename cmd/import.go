package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/flashdeck/internal/shared"
	"github.com/desertthunder/flashdeck/internal/tasks"
	"github.com/desertthunder/flashdeck/internal/vocab"
	"github.com/urfave/cli/v3"
)

// Import loads vocabulary files and URLs into the SQLite catalog.
func (r *Runner) Import(ctx context.Context, cmd *cli.Command) error {
	specs := cmd.StringArgs("sources")
	if len(specs) == 0 {
		return fmt.Errorf("%w: at least one source is required", shared.ErrMissingArgument)
	}

	config := r.resolveConfig(cmd)

	opts := tasks.ImportOpts{
		RateLimit:  config.Fetch.RatePerSecond,
		NumWorkers: cmd.Int("workers"),
		Replace:    cmd.Bool("replace"),
	}
	if cmd.IsSet("rate") {
		opts.RateLimit = cmd.Float("rate")
	}
	if opts.RateLimit <= 0 {
		return fmt.Errorf("%w: --rate must be positive", shared.ErrInvalidFlag)
	}

	db, repo, err := r.openCatalog(config)
	if err != nil {
		return err
	}
	defer db.Close()

	client := r.client(config)
	engine := tasks.NewImportEngine(repo, func(spec string) (vocab.Source, error) {
		return vocab.Open(spec, vocab.OpenOpts{Client: client})
	})

	r.logger.Info("importing vocabulary", "sources", len(specs), "rate", opts.RateLimit, "replace", opts.Replace)

	progressCh := make(chan tasks.ProgressUpdate, 10)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			if update.Phase == tasks.Complete {
				continue
			}
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := engine.Import(ctx, progressCh, specs, opts)
	close(progressCh)
	<-done
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	for _, res := range result.Sources {
		if res.Error != nil {
			r.logger.Warn("source not imported", "source", res.Source, "error", res.Error)
		}
	}

	r.writePlain("\n")
	r.writePlainHeader("Import Summary")
	if result.Removed > 0 {
		r.writePlain("Removed:   %d\n", result.Removed)
	}
	r.writePlain("Sources:   %d (%d failed)\n", len(result.Sources), result.Failed)
	r.writePlain("Inserted:  %d\n", result.Inserted)
	r.writePlain("Updated:   %d\n", result.Updated)

	if result.Succeeded == 0 {
		return fmt.Errorf("%w: no source could be imported", shared.ErrLoadFailed)
	}
	return nil
}
