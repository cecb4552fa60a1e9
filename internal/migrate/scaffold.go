package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/desertthunder/trek/internal/shared"
)

const scaffoldReadme = `# Revision scripts

One .sql file per revision. Each script carries a metadata header
(revision id, parent id, message, created timestamp) followed by
"-- migrate:up" and "-- migrate:down" sections.

Generate a new script with:

    trek revision -m "describe the change"

then fill in both sections before running "trek upgrade head".
`

// Init creates the migrations directory and writes a short README into it.
// Returns an error if the directory already exists.
func Init(dir string) error {
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("%w: %s", shared.ErrScaffoldExists, dir)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create migration directory: %w", err)
	}

	readmePath := filepath.Join(dir, "README.md")
	if err := os.WriteFile(readmePath, []byte(scaffoldReadme), 0644); err != nil {
		return fmt.Errorf("failed to write migration readme: %w", err)
	}

	return nil
}

// NewRevision generates a stub revision script chained to the current head
// and returns its path. The up and down sections are left empty for the
// caller to fill in.
func NewRevision(dir, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("%w: revision message", shared.ErrMissingArgument)
	}

	if _, err := os.Stat(dir); err != nil {
		return "", fmt.Errorf("%w: %s (run 'trek init' first)", shared.ErrNoScaffold, dir)
	}

	chain, err := LoadDir(os.DirFS(dir))
	if err != nil {
		return "", fmt.Errorf("failed to load existing revisions: %w", err)
	}

	script := &Script{
		ID:      shared.NewRevisionID(),
		Message: strings.TrimSpace(message),
		Created: time.Now().UTC(),
	}
	if head := chain.Head(); head != nil {
		script.Parent = head.ID
	}

	path := filepath.Join(dir, script.Filename())
	if err := os.WriteFile(path, []byte(script.Render()), 0644); err != nil {
		return "", fmt.Errorf("failed to write revision script: %w", err)
	}

	return path, nil
}
