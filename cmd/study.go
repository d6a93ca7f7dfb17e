package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/flashdeck/internal/deck"
	"github.com/desertthunder/flashdeck/internal/shared"
	"github.com/desertthunder/flashdeck/internal/ui"
	"github.com/urfave/cli/v3"
)

// applyStudyFlags overrides config values with the flags set on cmd.
func applyStudyFlags(config *shared.Config, cmd *cli.Command) {
	if cmd.IsSet("source") {
		config.Deck.Source = cmd.String("source")
	}
	if cmd.IsSet("lang") {
		config.Deck.Language = cmd.String("lang")
	}
	if cmd.IsSet("category") {
		config.Study.Category = cmd.String("category")
	}
	if cmd.IsSet("timer") {
		config.Study.TimerSeconds = cmd.Int("timer")
	}
	if cmd.IsSet("auto") {
		config.Study.AutoAdvance = cmd.Bool("auto")
	}
	if cmd.IsSet("shuffle") {
		config.Study.Shuffle = cmd.Bool("shuffle")
	}
}

// newStudyModel loads the configured deck and builds the TUI model for it.
func (r *Runner) newStudyModel(ctx context.Context, config *shared.Config, cmd *cli.Command) (*ui.Model, error) {
	d, err := r.loadDeck(ctx, config, config.Deck.Source)
	if err != nil {
		return nil, err
	}

	model, err := ui.NewModel(d, ui.ModelOpts{
		Controller: deck.Options{
			Labels:          r.labels(config, cmd),
			TickInterval:    config.Study.TickInterval(),
			TransitionDelay: config.Study.TransitionDelay(),
			TimerSeconds:    config.Study.TimerSeconds,
		},
		Category: config.Study.Category,
		Shuffle:  config.Study.Shuffle,
		Auto:     config.Study.AutoAdvance,
		Logger:   r.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrInvalidFlag, err)
	}
	return model, nil
}

// Study loads the deck and launches the interactive study TUI.
//
// A deck that fails to load is logged and the TUI never starts.
func (r *Runner) Study(ctx context.Context, cmd *cli.Command) error {
	config := r.resolveConfig(cmd)
	applyStudyFlags(config, cmd)
	for _, err := range config.Normalize() {
		r.logger.Warn("invalid flag value replaced with default", "error", err)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, closer, err := shared.NewFileLogger(config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	defer closer.Close()
	if err := shared.SetLogLevel(fileLogger, config.Log.Level); err != nil {
		fileLogger.Warn("invalid log level", "error", err)
	}
	r.SetLogger(shared.WithLogger(fileLogger, "session", shared.GenerateID()[:8]))

	model, err := r.newStudyModel(ctx, config, cmd)
	if err != nil {
		r.logger.Error("study session not started", "source", config.Deck.Source, "error", err)
		return err
	}
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	r.logger.Info("study session ended")
	return nil
}
