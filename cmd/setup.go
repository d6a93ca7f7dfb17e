package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/flashdeck/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupDatabase initializes the catalog database and runs migrations.
//
// A missing config file is created from the template first.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err != nil {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		} else {
			r.logger.Info("config file created", "path", configPath)
		}
	}

	config := r.resolveConfig(cmd)
	r.logger.Info("initializing database", "path", config.Database.Path)

	db, repo, err := r.openCatalog(config)
	if err != nil {
		return err
	}
	defer db.Close()

	versions, err := shared.AppliedVersions(db)
	if err != nil {
		return fmt.Errorf("failed to read migration history: %w", err)
	}

	count, err := repo.Count()
	if err != nil {
		return fmt.Errorf("failed to count catalog cards: %w", err)
	}

	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	r.writePlain("✓ Catalog ready at %s (%d migrations, %d cards)\n", config.Database.Path, len(versions), count)
	return nil
}

// SetupConfig writes the example configuration to --config.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if err := shared.CreateConfigFile(path); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrInvalidArgument, err)
	}

	r.logger.Info("config file created", "path", path)
	r.writePlain("✓ Configuration written to %s\n", path)
	return nil
}
