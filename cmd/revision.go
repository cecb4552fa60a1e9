package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/trek/internal/migrate"
	"github.com/urfave/cli/v3"
)

// Revision generates a stub revision script chained to the current head.
func (r *Runner) Revision(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)
	message := cmd.String("message")

	path, err := migrate.NewRevision(config.Migrations.Dir, message)
	if err != nil {
		return fmt.Errorf("failed to generate revision: %w", err)
	}

	r.logger.Info("revision created", "path", path)

	r.writePlain("✓ Created %s\n", path)
	r.writePlain("Fill in the '-- migrate:up' and '-- migrate:down' sections, then run 'trek upgrade head'\n")

	return nil
}
