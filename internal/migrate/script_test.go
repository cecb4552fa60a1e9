package migrate

import (
	"strings"
	"testing"
	"time"
)

const sampleScript = `-- revision: 3f2a9c1b4d5e
-- parent: 9e8d7c6b5a40
-- message: add song table
-- created: 2026-08-23T10:00:00Z

-- migrate:up
CREATE TABLE songs (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	length INTEGER NOT NULL
);

-- migrate:down
DROP TABLE songs;
`

func TestParseScript(t *testing.T) {
	t.Run("full script", func(t *testing.T) {
		script, err := ParseScript("3f2a9c1b4d5e_add_song_table.sql", []byte(sampleScript))
		if err != nil {
			t.Fatalf("failed to parse script: %v", err)
		}

		if script.ID != "3f2a9c1b4d5e" {
			t.Errorf("unexpected revision id: %s", script.ID)
		}
		if script.Parent != "9e8d7c6b5a40" {
			t.Errorf("unexpected parent: %s", script.Parent)
		}
		if script.Message != "add song table" {
			t.Errorf("unexpected message: %s", script.Message)
		}
		want := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
		if !script.Created.Equal(want) {
			t.Errorf("unexpected created timestamp: %v", script.Created)
		}
		if !strings.Contains(script.Up, "CREATE TABLE songs") {
			t.Errorf("up section not captured: %q", script.Up)
		}
		if !strings.Contains(script.Down, "DROP TABLE songs") {
			t.Errorf("down section not captured: %q", script.Down)
		}
	})

	t.Run("base revision has empty parent", func(t *testing.T) {
		raw := "-- revision: abc123def456\n-- parent:\n-- message: init\n-- migrate:up\nSELECT 1;\n-- migrate:down\nSELECT 2;\n"
		script, err := ParseScript("abc123def456_init.sql", []byte(raw))
		if err != nil {
			t.Fatalf("failed to parse script: %v", err)
		}
		if script.Parent != "" {
			t.Errorf("expected empty parent, got %q", script.Parent)
		}
	})

	t.Run("empty stub sections", func(t *testing.T) {
		stub := &Script{ID: "abc123def456", Message: "add genre column", Created: time.Now().UTC()}
		script, err := ParseScript(stub.Filename(), []byte(stub.Render()))
		if err != nil {
			t.Fatalf("failed to parse rendered stub: %v", err)
		}
		if len(script.UpStatements()) != 0 {
			t.Errorf("expected no up statements in stub, got %v", script.UpStatements())
		}
		if len(script.DownStatements()) != 0 {
			t.Errorf("expected no down statements in stub, got %v", script.DownStatements())
		}
	})

	t.Run("errors", func(t *testing.T) {
		tc := []struct {
			name string
			raw  string
		}{
			{
				name: "missing markers",
				raw:  "-- revision: abc123\nCREATE TABLE t (id INTEGER);",
			},
			{
				name: "missing down marker",
				raw:  "-- revision: abc123\n-- migrate:up\nSELECT 1;",
			},
			{
				name: "missing revision id",
				raw:  "-- message: no id\n-- migrate:up\nSELECT 1;\n-- migrate:down\nSELECT 2;",
			},
			{
				name: "sql before up marker",
				raw:  "-- revision: abc123\nSELECT 1;\n-- migrate:up\n-- migrate:down\n",
			},
			{
				name: "invalid created timestamp",
				raw:  "-- revision: abc123\n-- created: yesterday\n-- migrate:up\nSELECT 1;\n-- migrate:down\nSELECT 2;",
			},
			{
				name: "down before up",
				raw:  "-- revision: abc123\n-- migrate:down\nSELECT 1;\n-- migrate:up\nSELECT 2;",
			},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				if _, err := ParseScript("bad.sql", []byte(tt.raw)); err == nil {
					t.Error("expected parse error")
				}
			})
		}
	})
}

func TestRenderRoundTrip(t *testing.T) {
	original := &Script{
		ID:      "3f2a9c1b4d5e",
		Parent:  "9e8d7c6b5a40",
		Message: "add song table",
		Created: time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC),
		Up:      "CREATE TABLE songs (id TEXT PRIMARY KEY);",
		Down:    "DROP TABLE songs;",
	}

	parsed, err := ParseScript(original.Filename(), []byte(original.Render()))
	if err != nil {
		t.Fatalf("failed to parse rendered script: %v", err)
	}

	if parsed.ID != original.ID || parsed.Parent != original.Parent || parsed.Message != original.Message {
		t.Errorf("metadata did not round trip: %+v", parsed)
	}
	if !parsed.Created.Equal(original.Created) {
		t.Errorf("created timestamp did not round trip: %v", parsed.Created)
	}
	if len(parsed.UpStatements()) != 1 || len(parsed.DownStatements()) != 1 {
		t.Errorf("statements did not round trip: up=%v down=%v", parsed.UpStatements(), parsed.DownStatements())
	}
}

func TestFilename(t *testing.T) {
	script := &Script{ID: "3f2a9c1b4d5e", Message: "Add Song Table"}
	if got := script.Filename(); got != "3f2a9c1b4d5e_add_song_table.sql" {
		t.Errorf("unexpected filename: %s", got)
	}

	script = &Script{ID: "3f2a9c1b4d5e"}
	if got := script.Filename(); got != "3f2a9c1b4d5e.sql" {
		t.Errorf("unexpected filename without message: %s", got)
	}
}

func TestStatements(t *testing.T) {
	script, err := ParseScript("s.sql", []byte(sampleScript))
	if err != nil {
		t.Fatalf("failed to parse script: %v", err)
	}

	up := script.UpStatements()
	if len(up) != 1 {
		t.Fatalf("expected 1 up statement, got %d", len(up))
	}
	if !strings.HasPrefix(up[0], "CREATE TABLE songs") {
		t.Errorf("unexpected statement: %q", up[0])
	}

	t.Run("comments and blanks dropped", func(t *testing.T) {
		section := "-- leading comment\nSELECT 1; -- trailing comment\n\n;\nSELECT 2;"
		statements := splitStatements(section)
		if len(statements) != 2 {
			t.Fatalf("expected 2 statements, got %d: %v", len(statements), statements)
		}
		if statements[0] != "SELECT 1" || statements[1] != "SELECT 2" {
			t.Errorf("unexpected statements: %v", statements)
		}
	})
}
