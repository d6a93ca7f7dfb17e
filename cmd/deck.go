package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/flashdeck/internal/formatter"
	"github.com/desertthunder/flashdeck/internal/models"
	"github.com/desertthunder/flashdeck/internal/shared"
	"github.com/urfave/cli/v3"
)

// deckFromFlags loads the deck named by --source (default: deck.source).
func (r *Runner) deckFromFlags(ctx context.Context, cmd *cli.Command) (*shared.Config, *models.Deck, error) {
	config := r.resolveConfig(cmd)

	spec := config.Deck.Source
	if cmd.IsSet("source") {
		spec = cmd.String("source")
	}

	d, err := r.loadDeck(ctx, config, spec)
	if err != nil {
		return nil, nil, err
	}
	return config, d, nil
}

// categoryFromFlag returns --category, checked against d.
func categoryFromFlag(cmd *cli.Command, d *models.Deck) (string, error) {
	category := cmd.String("category")
	if category == "" {
		return models.CategoryAll, nil
	}
	if category != models.CategoryAll && !d.HasCategory(category) {
		return "", fmt.Errorf("%w: unknown category %q", shared.ErrInvalidFlag, category)
	}
	return category, nil
}

// DeckList prints the cards of a deck.
func (r *Runner) DeckList(ctx context.Context, cmd *cli.Command) error {
	config, d, err := r.deckFromFlags(ctx, cmd)
	if err != nil {
		return err
	}

	category, err := categoryFromFlag(cmd, d)
	if err != nil {
		return err
	}
	cards := d.Filter(category)

	if cmd.Bool("json") {
		return r.writeJSON(cards, cmd.Bool("pretty"))
	}

	labels := r.labels(config, cmd)
	r.writePlainHeader(fmt.Sprintf("%s (%d cards)", labels.CategoryName(category), len(cards)))
	for i, card := range cards {
		r.writePlain("%3d. %s [%s] - %s", i+1, card.Word, card.Pronunciation, card.Meaning)
		if card.MeaningFa != "" {
			r.writePlain(" / %s", card.MeaningFa)
		}
		r.writePlain("  (%s)\n", labels.CategoryName(card.Category))
	}
	return nil
}

// DeckCategories prints the categories of a deck with their labels and counts.
func (r *Runner) DeckCategories(ctx context.Context, cmd *cli.Command) error {
	config, d, err := r.deckFromFlags(ctx, cmd)
	if err != nil {
		return err
	}

	summary := formatter.SummarizeCategories(d, r.labels(config, cmd))
	if cmd.Bool("json") {
		return r.writeJSON(summary, true)
	}

	r.writePlainHeader(fmt.Sprintf("%d categories, %d cards", len(summary), d.Len()))
	for _, c := range summary {
		r.writePlain("%-14s %-20s %d\n", c.ID, c.Label, c.Count)
	}
	return nil
}

// DeckExport writes a deck in the requested format to --output or stdout.
func (r *Runner) DeckExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	config, d, err := r.deckFromFlags(ctx, cmd)
	if err != nil {
		return err
	}

	category, err := categoryFromFlag(cmd, d)
	if err != nil {
		return err
	}

	export := formatter.NewDeckExport(cmd.String("title"), d, category, r.labels(config, cmd))

	path := cmd.String("output")
	if path == "" || path == "-" {
		return formatter.WriteExport(r.output, export, format)
	}

	written, err := formatter.WriteExportFile(export, format, path)
	if err != nil {
		return err
	}
	r.logger.Info("deck exported", "path", written, "format", format, "cards", len(export.Cards))
	r.writePlain("✓ Exported %d cards to %s\n", len(export.Cards), written)
	return nil
}
