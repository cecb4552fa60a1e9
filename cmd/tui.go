package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/trek/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive revision browser.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, engine, err := r.openEngine(config)
	if err != nil {
		return err
	}
	defer db.Close()

	model := ui.NewModel(engine)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
