package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/trek/internal/migrate"
	"github.com/urfave/cli/v3"
)

// Upgrade applies pending revisions up to the target argument (default head).
func (r *Runner) Upgrade(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, engine, err := r.openEngine(config)
	if err != nil {
		return err
	}
	defer db.Close()

	target := cmd.StringArg("target")
	if target == "" {
		target = "head"
	}

	applied, err := engine.Upgrade(target)
	if err != nil {
		return fmt.Errorf("upgrade failed: %w", err)
	}

	if applied == 0 {
		r.writePlain("Nothing to apply, database is up to date\n")
	} else {
		r.writePlain("✓ Applied %d revision(s)\n", applied)
	}

	return r.printCurrent(engine, false)
}

// Downgrade reverts revisions. With no target it reverts exactly one; the
// target may be "base" or a revision id, and --steps reverts several.
func (r *Runner) Downgrade(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, engine, err := r.openEngine(config)
	if err != nil {
		return err
	}
	defer db.Close()

	target := cmd.StringArg("target")

	reverted, err := engine.Downgrade(target, cmd.Int("steps"))
	if err != nil {
		return fmt.Errorf("downgrade failed: %w", err)
	}

	r.writePlain("✓ Reverted %d revision(s)\n", reverted)

	return r.printCurrent(engine, false)
}

// Current reports the current schema revision. Opening the database doubles
// as a connectivity check.
func (r *Runner) Current(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, engine, err := r.openEngine(config)
	if err != nil {
		return err
	}
	defer db.Close()

	return r.printCurrent(engine, cmd.Bool("json"))
}

// currentPayload is the JSON shape of the current command's output.
type currentPayload struct {
	Revision string `json:"revision"`
	Message  string `json:"message,omitempty"`
}

// printCurrent writes the current revision in plain or JSON form.
func (r *Runner) printCurrent(engine *migrate.Engine, asJSON bool) error {
	current, err := engine.Current()
	if err != nil {
		return fmt.Errorf("failed to determine current revision: %w", err)
	}

	if asJSON {
		payload := currentPayload{Revision: "base"}
		if current != nil {
			payload.Revision = current.ID
			payload.Message = current.Message
		}
		return r.writeJSON(payload, true)
	}

	if current == nil {
		return r.writePlain("Current revision: base (no revisions applied)\n")
	}
	return r.writePlain("Current revision: %s (%s)\n", current.ID, current.Message)
}

// revisionPayload is the JSON shape of one history entry.
type revisionPayload struct {
	Revision  string `json:"revision"`
	Parent    string `json:"parent,omitempty"`
	Message   string `json:"message"`
	Applied   bool   `json:"applied"`
	AppliedAt string `json:"applied_at,omitempty"`
}

// History lists the revision chain base to head with applied markers.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, engine, err := r.openEngine(config)
	if err != nil {
		return err
	}
	defer db.Close()

	statuses, err := engine.History()
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if cmd.Bool("json") {
		payload := make([]revisionPayload, 0, len(statuses))
		for _, status := range statuses {
			entry := revisionPayload{
				Revision: status.Script.ID,
				Parent:   status.Script.Parent,
				Message:  status.Script.Message,
				Applied:  status.Applied,
			}
			if status.Applied {
				entry.AppliedAt = status.AppliedAt.Format("2006-01-02 15:04:05")
			}
			payload = append(payload, entry)
		}
		return r.writeJSON(payload, cmd.Bool("pretty"))
	}

	if len(statuses) == 0 {
		return r.writePlain("No revisions found in %s\n", config.Migrations.Dir)
	}

	for _, status := range statuses {
		marker := " "
		if status.Applied {
			marker = "✓"
		}
		r.writePlain("%s %s  %s\n", marker, status.Script.ID, status.Script.Message)
	}

	return r.printCurrent(engine, false)
}
