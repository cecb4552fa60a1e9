package migrate

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/trek/internal/shared"
)

// DefaultVersionTable is the bookkeeping table name used when none is
// configured.
const DefaultVersionTable = "schema_revisions"

// Engine applies and reverts revision scripts against a database, recording
// each applied revision in a bookkeeping table.
type Engine struct {
	db     *sql.DB
	chain  *Chain
	table  string
	logger *log.Logger
}

// EngineOpts contains configuration options for creating an Engine.
type EngineOpts struct {
	DB     *sql.DB
	Chain  *Chain
	Table  string
	Logger *log.Logger
}

// NewEngine creates a new Engine with the provided configuration
func NewEngine(opts EngineOpts) *Engine {
	if opts.Table == "" {
		opts.Table = DefaultVersionTable
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Engine{
		db:     opts.DB,
		chain:  opts.Chain,
		table:  opts.Table,
		logger: opts.Logger,
	}
}

// Chain returns the revision chain the engine operates on.
func (e *Engine) Chain() *Chain {
	return e.chain
}

// EnsureVersionTable creates the bookkeeping table if it doesn't exist.
func (e *Engine) EnsureVersionTable() error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			revision TEXT PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`, e.table)
	if _, err := e.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create version table: %w", err)
	}
	return nil
}

// Current returns the deepest applied revision on the chain, or nil when the
// database is at base.
func (e *Engine) Current() (*Script, error) {
	if err := e.EnsureVersionTable(); err != nil {
		return nil, err
	}

	applied, err := e.appliedRevisions()
	if err != nil {
		return nil, err
	}

	idx, err := e.currentIndex(applied)
	if err != nil {
		return nil, err
	}
	if idx < 0 {
		return nil, nil
	}
	return e.chain.Scripts()[idx], nil
}

// Upgrade applies every unapplied revision up to the target and returns the
// number applied. The target is "head", "", or a revision id on the chain.
// A target at or below the current revision applies nothing.
func (e *Engine) Upgrade(target string) (int, error) {
	if err := e.EnsureVersionTable(); err != nil {
		return 0, err
	}

	applied, err := e.appliedRevisions()
	if err != nil {
		return 0, err
	}

	current, err := e.currentIndex(applied)
	if err != nil {
		return 0, err
	}

	targetIdx := e.chain.Len() - 1
	if target != "" && target != "head" {
		idx, ok := e.chain.IndexOf(target)
		if !ok {
			return 0, fmt.Errorf("%w: %s", shared.ErrRevisionNotFound, target)
		}
		targetIdx = idx
	}

	count := 0
	for i := current + 1; i <= targetIdx; i++ {
		script := e.chain.Scripts()[i]
		if err := e.applyScript(script); err != nil {
			return count, fmt.Errorf("failed to apply revision %s: %w", script.ID, err)
		}
		e.logger.Info("applied revision", "revision", script.ID, "message", script.Message)
		count++
	}

	return count, nil
}

// Downgrade reverts applied revisions and returns the number reverted.
//
// With an empty target it reverts exactly steps revisions (steps below one is
// treated as one). Target "base" reverts everything; a revision id reverts
// until that revision is current.
func (e *Engine) Downgrade(target string, steps int) (int, error) {
	if err := e.EnsureVersionTable(); err != nil {
		return 0, err
	}

	applied, err := e.appliedRevisions()
	if err != nil {
		return 0, err
	}

	current, err := e.currentIndex(applied)
	if err != nil {
		return 0, err
	}
	if current < 0 {
		return 0, shared.ErrNothingApplied
	}

	var stop int
	switch target {
	case "":
		if steps < 1 {
			steps = 1
		}
		stop = current - steps
		if stop < -1 {
			stop = -1
		}
	case "base":
		stop = -1
	default:
		idx, ok := e.chain.IndexOf(target)
		if !ok {
			return 0, fmt.Errorf("%w: %s", shared.ErrRevisionNotFound, target)
		}
		if idx > current {
			return 0, fmt.Errorf("%w: revision %s is not applied", shared.ErrInvalidArgument, target)
		}
		stop = idx
	}

	count := 0
	for i := current; i > stop; i-- {
		script := e.chain.Scripts()[i]
		if err := e.revertScript(script); err != nil {
			return count, fmt.Errorf("failed to revert revision %s: %w", script.ID, err)
		}
		e.logger.Info("reverted revision", "revision", script.ID, "message", script.Message)
		count++
	}

	return count, nil
}

// RevisionStatus pairs a revision script with its applied state.
type RevisionStatus struct {
	Script    *Script
	Applied   bool
	AppliedAt time.Time
}

// History returns the full chain base to head with applied markers.
func (e *Engine) History() ([]RevisionStatus, error) {
	if err := e.EnsureVersionTable(); err != nil {
		return nil, err
	}

	applied, err := e.appliedRevisions()
	if err != nil {
		return nil, err
	}

	if _, err := e.currentIndex(applied); err != nil {
		return nil, err
	}

	statuses := make([]RevisionStatus, 0, e.chain.Len())
	for _, script := range e.chain.Scripts() {
		appliedAt, ok := applied[script.ID]
		statuses = append(statuses, RevisionStatus{Script: script, Applied: ok, AppliedAt: appliedAt})
	}

	return statuses, nil
}

// appliedRevisions reads the bookkeeping table into a map of revision id to
// applied timestamp.
func (e *Engine) appliedRevisions() (map[string]time.Time, error) {
	rows, err := e.db.Query(fmt.Sprintf("SELECT revision, applied_at FROM %s", e.table))
	if err != nil {
		return nil, fmt.Errorf("failed to query version table: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]time.Time)
	for rows.Next() {
		var revision string
		var appliedAt time.Time
		if err := rows.Scan(&revision, &appliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan version row: %w", err)
		}
		applied[revision] = appliedAt
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return applied, nil
}

// currentIndex returns the chain index of the deepest applied revision, or -1
// at base. Applied revisions must form a contiguous prefix of the chain.
func (e *Engine) currentIndex(applied map[string]time.Time) (int, error) {
	idx := -1
	for i, script := range e.chain.Scripts() {
		if _, ok := applied[script.ID]; !ok {
			continue
		}
		if i != idx+1 {
			return 0, fmt.Errorf("%w: applied revision %s follows an unapplied revision", shared.ErrBrokenChain, script.ID)
		}
		idx = i
	}

	if len(applied) != idx+1 {
		for revision := range applied {
			if _, ok := e.chain.Get(revision); !ok {
				return 0, fmt.Errorf("%w: applied revision %s has no script on disk", shared.ErrRevisionNotFound, revision)
			}
		}
	}

	return idx, nil
}

// applyScript executes a revision's up statements and records it, all in one
// transaction.
func (e *Engine) applyScript(script *Script) error {
	statements := script.UpStatements()
	if len(statements) == 0 {
		return fmt.Errorf("%w: up section of %s", shared.ErrEmptyRevision, script.ID)
	}

	tx, err := e.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute statement: %w\nStatement: %s", err, stmt)
		}
	}

	if _, err := tx.Exec(fmt.Sprintf("INSERT INTO %s (revision) VALUES (?)", e.table), script.ID); err != nil {
		return err
	}

	return tx.Commit()
}

// revertScript executes a revision's down statements and removes its record,
// all in one transaction.
func (e *Engine) revertScript(script *Script) error {
	statements := script.DownStatements()
	if len(statements) == 0 {
		return fmt.Errorf("%w: down section of %s", shared.ErrEmptyRevision, script.ID)
	}

	tx, err := e.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute statement: %w\nStatement: %s", err, stmt)
		}
	}

	if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE revision = ?", e.table), script.ID); err != nil {
		return err
	}

	return tx.Commit()
}
