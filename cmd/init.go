package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/trek/internal/migrate"
	"github.com/desertthunder/trek/internal/shared"
	"github.com/urfave/cli/v3"
)

// Init scaffolds the migrations directory and creates config.toml from the
// embedded template when it doesn't exist yet.
func (r *Runner) Init(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.String("dir")
	configPath := cmd.String("config")

	r.logger.Info("scaffolding migration environment", "dir", dir)
	if err := migrate.Init(dir); err != nil {
		return fmt.Errorf("failed to scaffold migrations: %w", err)
	}

	if _, err := os.Stat(configPath); err != nil {
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file", "error", err)
		} else {
			r.logger.Info("config file created", "path", configPath)
		}
	}

	r.writePlain("✓ Migration environment created in %s\n", dir)
	r.writePlainln("Next steps:")
	r.writePlain("1. Run 'trek db bootstrap' to create the base model tables\n")
	r.writePlain("2. Run 'trek revision -m \"describe the change\"' to generate a script\n")
	r.writePlain("3. Fill in the up/down sections, then 'trek upgrade head'\n")

	return nil
}
