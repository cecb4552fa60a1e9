// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// configFlag is shared by every command that reads config.toml.
func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// initCommand scaffolds the migration environment
func initCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Scaffold the migrations directory and config file",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Migrations directory to create",
				Value:   "migrations",
			},
		},
		Action: r.Init,
	}
}

// currentCommand reports the current revision
func currentCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "current",
		Usage: "Report the current schema revision",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Current,
	}
}

// revisionCommand generates a new revision script
func revisionCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "revision",
		Aliases: []string{"rev"},
		Usage:   "Generate a new revision script with empty up/down sections",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:     "message",
				Aliases:  []string{"m"},
				Usage:    "Short description of the schema change",
				Required: true,
			},
		},
		Action: r.Revision,
	}
}

// upgradeCommand applies pending revisions
func upgradeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "upgrade",
		Aliases: []string{"up"},
		Usage:   "Apply pending revisions up to the target (default head)",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "target",
			},
		},
		Flags:  []cli.Flag{configFlag()},
		Action: r.Upgrade,
	}
}

// downgradeCommand reverts applied revisions
func downgradeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "downgrade",
		Aliases: []string{"down"},
		Usage:   "Revert revisions; with no target reverts exactly one",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "target",
			},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:  "steps",
				Usage: "Number of revisions to revert",
				Value: 1,
			},
		},
		Action: r.Downgrade,
	}
}

// historyCommand lists the revision chain
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List the revision chain base to head with applied markers",
		Flags: []cli.Flag{
			configFlag(),
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
		Action: r.History,
	}
}

// dbCommand handles demo database operations
func dbCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "db",
		Usage: "Demo database operations",
		Commands: []*cli.Command{
			{
				Name:   "bootstrap",
				Usage:  "Create the base model tables (create_all equivalent)",
				Flags:  []cli.Flag{configFlag()},
				Action: r.DBBootstrap,
			},
			{
				Name:   "seed",
				Usage:  "Insert a few example artists and songs",
				Flags:  []cli.Flag{configFlag()},
				Action: r.DBSeed,
			},
			{
				Name:  "artists",
				Usage: "List artists",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "genre",
						Usage: "Filter by genre",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.DBArtists,
			},
			{
				Name:  "songs",
				Usage: "List songs",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "artist-id",
						Usage: "Filter by artist ID",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.DBSongs,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive revision management.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for browsing and running revisions",
		Flags:   []cli.Flag{configFlag()},
		Action:  r.TUI,
	}
}
