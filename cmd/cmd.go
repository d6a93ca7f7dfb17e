// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func sourceFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "source",
		Aliases: []string{"s"},
		Usage:   "Vocabulary source: JSON/TOML file, http(s) URL, or db: for the catalog (default: deck.source)",
	}
}

func categoryFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "category",
		Usage: "Category to show (\"all\" for every card)",
	}
}

func langFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "lang",
		Usage: "UI language for labels (en, de)",
	}
}

// studyCommand launches the flashcard TUI
func studyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "study",
		Aliases: []string{"tui", "ui"},
		Usage:   "Study a deck in the interactive TUI",
		Flags: []cli.Flag{
			configFlag(),
			sourceFlag(),
			categoryFlag(),
			langFlag(),
			&cli.IntFlag{
				Name:    "timer",
				Aliases: []string{"t"},
				Usage:   "Auto-advance duration in seconds",
			},
			&cli.BoolFlag{
				Name:    "auto",
				Aliases: []string{"a"},
				Usage:   "Start with auto-advance enabled",
			},
			&cli.BoolFlag{
				Name:  "shuffle",
				Usage: "Shuffle the deck on start",
			},
		},
		Action: r.Study,
	}
}

// deckCommand handles deck inspection and export
func deckCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "deck",
		Usage: "Inspect and export vocabulary decks",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List the cards of a deck",
				Flags: []cli.Flag{
					configFlag(),
					sourceFlag(),
					categoryFlag(),
					langFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.DeckList,
			},
			{
				Name:    "categories",
				Aliases: []string{"cats"},
				Usage:   "List the categories of a deck with their labels and card counts",
				Flags: []cli.Flag{
					configFlag(),
					sourceFlag(),
					langFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.DeckCategories,
			},
			{
				Name:  "export",
				Usage: "Export a deck as csv, markdown, text, json or toml",
				Flags: []cli.Flag{
					configFlag(),
					sourceFlag(),
					categoryFlag(),
					langFlag(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, markdown, text, json, toml",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (default: stdout)",
					},
					&cli.StringFlag{
						Name:  "title",
						Usage: "Title used by the markdown and text formats",
						Value: "Vocabulary",
					},
				},
				Action: r.DeckExport,
			},
		},
	}
}

// importCommand loads vocabulary sources into the catalog
func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import vocabulary files or URLs into the SQLite catalog",
		Arguments: []cli.Argument{
			&cli.StringArgs{
				Name: "sources",
				Min:  1,
				Max:  -1,
			},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "replace",
				Usage: "Replace the catalog with the imported cards (kept when no source loads)",
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Source fetches per second (default: fetch.rate_per_second)",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent fetchers",
				Value: 2,
			},
		},
		Action: r.Import,
	}
}

// setupCommand handles setup operations for the catalog and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize the catalog database and run migrations",
				Flags: []cli.Flag{
					configFlag(),
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "config",
				Usage: "Write the example configuration file",
				Flags: []cli.Flag{
					configFlag(),
				},
				Action: r.SetupConfig,
			},
		},
	}
}
