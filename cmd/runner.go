package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/trek/internal/migrate"
	"github.com/desertthunder/trek/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		logger: opts.Logger,
		output: opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		initCommand, currentCommand, revisionCommand, upgradeCommand, downgradeCommand, historyCommand, dbCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig reads the config file named by the command's --config flag,
// falling back to embedded defaults when it's missing or unreadable.
func (r *Runner) loadConfig(cmd *cli.Command) *shared.Config {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err != nil {
		r.logger.Debug("config file not found, using defaults", "path", configPath)
		return shared.DefaultConfig()
	}

	config, err := shared.LoadConfig(configPath)
	if err != nil {
		r.logger.Warn("failed to load config, using defaults", "error", err)
		return shared.DefaultConfig()
	}
	return config
}

// openDB opens and configures the SQLite database named by the config.
func (r *Runner) openDB(config *shared.Config) (*sql.DB, error) {
	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
	return db, nil
}

// openEngine opens the database, loads the revision chain from the
// migrations directory, and wires both into an engine. The caller closes the
// returned database.
func (r *Runner) openEngine(config *shared.Config) (*sql.DB, *migrate.Engine, error) {
	if _, err := os.Stat(config.Migrations.Dir); err != nil {
		return nil, nil, fmt.Errorf("%w: %s (run 'trek init' first)", shared.ErrNoScaffold, config.Migrations.Dir)
	}

	db, err := r.openDB(config)
	if err != nil {
		return nil, nil, err
	}

	chain, err := migrate.LoadDir(os.DirFS(config.Migrations.Dir))
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to load revisions: %w", err)
	}

	engine := migrate.NewEngine(migrate.EngineOpts{
		DB:     db,
		Chain:  chain,
		Table:  config.Migrations.Table,
		Logger: r.logger,
	})

	return db, engine, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
