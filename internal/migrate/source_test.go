package migrate

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/desertthunder/trek/internal/shared"
)

// script is a test helper for building chain fixtures.
func script(id, parent, message string) *Script {
	return &Script{ID: id, Parent: parent, Message: message, Up: "SELECT 1;", Down: "SELECT 2;"}
}

func TestNewChain(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		chain, err := NewChain(nil)
		if err != nil {
			t.Fatalf("failed to build empty chain: %v", err)
		}
		if chain.Len() != 0 {
			t.Errorf("expected empty chain, got %d", chain.Len())
		}
		if chain.Head() != nil {
			t.Error("expected nil head for empty chain")
		}
	})

	t.Run("orders by parent links", func(t *testing.T) {
		// deliberately out of order
		scripts := []*Script{
			script("ccc", "bbb", "third"),
			script("aaa", "", "first"),
			script("bbb", "aaa", "second"),
		}

		chain, err := NewChain(scripts)
		if err != nil {
			t.Fatalf("failed to build chain: %v", err)
		}

		ordered := chain.Scripts()
		if ordered[0].ID != "aaa" || ordered[1].ID != "bbb" || ordered[2].ID != "ccc" {
			t.Errorf("unexpected order: %s %s %s", ordered[0].ID, ordered[1].ID, ordered[2].ID)
		}
		if chain.Head().ID != "ccc" {
			t.Errorf("unexpected head: %s", chain.Head().ID)
		}

		idx, ok := chain.IndexOf("bbb")
		if !ok || idx != 1 {
			t.Errorf("unexpected index for bbb: %d %v", idx, ok)
		}
	})

	t.Run("rejects broken chains", func(t *testing.T) {
		tc := []struct {
			name    string
			scripts []*Script
		}{
			{
				name:    "duplicate id",
				scripts: []*Script{script("aaa", "", "one"), script("aaa", "", "two")},
			},
			{
				name:    "multiple bases",
				scripts: []*Script{script("aaa", "", "one"), script("bbb", "", "two")},
			},
			{
				name:    "unknown parent",
				scripts: []*Script{script("aaa", "", "one"), script("bbb", "zzz", "two")},
			},
			{
				name:    "shared parent",
				scripts: []*Script{script("aaa", "", "one"), script("bbb", "aaa", "two"), script("ccc", "aaa", "three")},
			},
			{
				name:    "cycle",
				scripts: []*Script{script("aaa", "bbb", "one"), script("bbb", "aaa", "two")},
			},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				_, err := NewChain(tt.scripts)
				if !errors.Is(err, shared.ErrBrokenChain) {
					t.Errorf("expected ErrBrokenChain, got %v", err)
				}
			})
		}
	})
}

func TestLoadDir(t *testing.T) {
	t.Run("loads and orders scripts", func(t *testing.T) {
		fsys := fstest.MapFS{
			"bbb222222222_second.sql": &fstest.MapFile{
				Data: []byte("-- revision: bbb222222222\n-- parent: aaa111111111\n-- message: second\n-- migrate:up\nSELECT 1;\n-- migrate:down\nSELECT 2;\n"),
			},
			"aaa111111111_first.sql": &fstest.MapFile{
				Data: []byte("-- revision: aaa111111111\n-- parent:\n-- message: first\n-- migrate:up\nSELECT 1;\n-- migrate:down\nSELECT 2;\n"),
			},
			"README.md": &fstest.MapFile{Data: []byte("not a script")},
		}

		chain, err := LoadDir(fsys)
		if err != nil {
			t.Fatalf("failed to load dir: %v", err)
		}

		if chain.Len() != 2 {
			t.Fatalf("expected 2 revisions, got %d", chain.Len())
		}
		if chain.Scripts()[0].ID != "aaa111111111" {
			t.Errorf("unexpected base: %s", chain.Scripts()[0].ID)
		}
		if chain.Head().ID != "bbb222222222" {
			t.Errorf("unexpected head: %s", chain.Head().ID)
		}
	})

	t.Run("empty directory", func(t *testing.T) {
		chain, err := LoadDir(fstest.MapFS{})
		if err != nil {
			t.Fatalf("failed to load empty dir: %v", err)
		}
		if chain.Len() != 0 {
			t.Errorf("expected empty chain, got %d", chain.Len())
		}
	})

	t.Run("propagates parse errors", func(t *testing.T) {
		fsys := fstest.MapFS{
			"broken.sql": &fstest.MapFile{Data: []byte("CREATE TABLE t (id INTEGER);")},
		}
		if _, err := LoadDir(fsys); err == nil {
			t.Error("expected error for unparseable script")
		}
	})
}
