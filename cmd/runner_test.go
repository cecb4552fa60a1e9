package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/trek/internal/migrate"
	"github.com/desertthunder/trek/internal/shared"
	helpers "github.com/desertthunder/trek/internal/testing"
	"github.com/urfave/cli/v3"
)

// runCLI builds a fresh app around a silent Runner and executes one command.
func runCLI(t *testing.T, out *bytes.Buffer, args ...string) error {
	t.Helper()
	runner := NewRunner(RunnerOpts{
		Logger: log.New(io.Discard),
		Output: out,
	})
	app := &cli.Command{
		Name:     "trek",
		Commands: runner.register(),
	}
	return app.Run(context.Background(), append([]string{"trek"}, args...))
}

func TestWorkflow(t *testing.T) {
	t.Chdir(t.TempDir())
	out := &bytes.Buffer{}

	if err := runCLI(t, out, "init"); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(out.String(), "Migration environment created") {
		t.Errorf("unexpected init output:\n%s", out.String())
	}
	for _, path := range []string{"migrations", "config.toml"} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("init should create %s: %v", path, err)
		}
	}

	out.Reset()
	if err := runCLI(t, out, "db", "bootstrap"); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	out.Reset()
	if err := runCLI(t, out, "current"); err != nil {
		t.Fatalf("current failed: %v", err)
	}
	if !strings.Contains(out.String(), "Current revision: base") {
		t.Errorf("expected base before any upgrade:\n%s", out.String())
	}

	out.Reset()
	if err := runCLI(t, out, "db", "seed"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if !strings.Contains(out.String(), "Seeded 3 artist(s) and 0 song(s)") {
		t.Errorf("songs should be skipped before migration:\n%s", out.String())
	}

	out.Reset()
	if err := runCLI(t, out, "revision", "-m", "add song table"); err != nil {
		t.Fatalf("revision failed: %v", err)
	}
	scripts, err := filepath.Glob(filepath.Join("migrations", "*.sql"))
	if err != nil || len(scripts) != 1 {
		t.Fatalf("expected one revision script, got %v (%v)", scripts, err)
	}

	// the generated stub has empty sections, so upgrade must refuse it
	if err := runCLI(t, out, "upgrade", "head"); !errors.Is(err, shared.ErrEmptyRevision) {
		t.Fatalf("expected ErrEmptyRevision for empty stub, got %v", err)
	}

	fillRevision(t, scripts[0])

	out.Reset()
	if err := runCLI(t, out, "upgrade", "head"); err != nil {
		t.Fatalf("upgrade failed: %v", err)
	}
	if !strings.Contains(out.String(), "Applied 1 revision(s)") {
		t.Errorf("unexpected upgrade output:\n%s", out.String())
	}
	if strings.Contains(out.String(), "Current revision: base") {
		t.Errorf("current should move off base after upgrade:\n%s", out.String())
	}

	out.Reset()
	if err := runCLI(t, out, "upgrade", "head"); err != nil {
		t.Fatalf("second upgrade failed: %v", err)
	}
	if !strings.Contains(out.String(), "Nothing to apply") {
		t.Errorf("repeated upgrade should be a no-op:\n%s", out.String())
	}

	out.Reset()
	if err := runCLI(t, out, "db", "seed"); err != nil {
		t.Fatalf("seed after migration failed: %v", err)
	}
	if !strings.Contains(out.String(), "3 song(s)") {
		t.Errorf("songs should seed once the table exists:\n%s", out.String())
	}

	out.Reset()
	if err := runCLI(t, out, "db", "songs"); err != nil {
		t.Fatalf("listing songs failed: %v", err)
	}
	if !strings.Contains(out.String(), "Purple Rain") {
		t.Errorf("unexpected songs output:\n%s", out.String())
	}

	out.Reset()
	if err := runCLI(t, out, "history"); err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓") || !strings.Contains(out.String(), "add song table") {
		t.Errorf("unexpected history output:\n%s", out.String())
	}

	out.Reset()
	if err := runCLI(t, out, "downgrade"); err != nil {
		t.Fatalf("downgrade failed: %v", err)
	}
	if !strings.Contains(out.String(), "Reverted 1 revision(s)") {
		t.Errorf("unexpected downgrade output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Current revision: base") {
		t.Errorf("downgrade should return to base:\n%s", out.String())
	}

	if err := runCLI(t, out, "db", "songs"); err == nil {
		t.Error("listing songs should fail after the table is dropped")
	}

	out.Reset()
	if err := runCLI(t, out, "current", "--json"); err != nil {
		t.Fatalf("current --json failed: %v", err)
	}
	if !strings.Contains(out.String(), `"revision": "base"`) {
		t.Errorf("unexpected JSON output:\n%s", out.String())
	}
}

func TestCommandsRequireScaffold(t *testing.T) {
	t.Chdir(t.TempDir())
	out := &bytes.Buffer{}

	for _, args := range [][]string{
		{"current"},
		{"upgrade", "head"},
		{"downgrade"},
		{"history"},
	} {
		if err := runCLI(t, out, args...); !errors.Is(err, shared.ErrNoScaffold) {
			t.Errorf("%v: expected ErrNoScaffold, got %v", args, err)
		}
	}
}

func TestInitRefusesExistingScaffold(t *testing.T) {
	t.Chdir(t.TempDir())
	out := &bytes.Buffer{}

	if err := runCLI(t, out, "init"); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if err := runCLI(t, out, "init"); !errors.Is(err, shared.ErrScaffoldExists) {
		t.Errorf("expected ErrScaffoldExists, got %v", err)
	}
}

func TestOutputWriteFailures(t *testing.T) {
	runner := NewRunner(RunnerOpts{
		Logger: log.New(io.Discard),
		Output: &helpers.FWriter{},
	})

	if err := runner.writePlain("current revision: %s\n", "base"); err == nil {
		t.Error("expected error from failing writer")
	}
	if err := runner.writePlainln("next steps:"); err == nil {
		t.Error("expected error from failing writer")
	}
	if err := runner.writeJSON(currentPayload{Revision: "base"}, true); err == nil {
		t.Error("expected error from failing writer")
	}
}

// fillRevision writes the walkthrough's songs DDL into a stub script.
func fillRevision(t *testing.T, path string) {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read revision: %v", err)
	}
	script, err := migrate.ParseScript(path, data)
	if err != nil {
		t.Fatalf("failed to parse revision: %v", err)
	}

	script.Up = `CREATE TABLE songs (
    id TEXT PRIMARY KEY,
    artist_id TEXT NOT NULL REFERENCES artists(id),
    name TEXT NOT NULL,
    length INTEGER NOT NULL,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL,
    deleted_at TIMESTAMP
);`
	script.Down = `DROP TABLE songs;`

	if err := os.WriteFile(path, []byte(script.Render()), 0644); err != nil {
		t.Fatalf("failed to write revision: %v", err)
	}
}
