package shared

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tc := []struct {
		name    string
		message string
		want    string
	}{
		{
			name:    "basic message",
			message: "add song table",
			want:    "add_song_table",
		},
		{
			name:    "mixed case and punctuation",
			message: "Add Song.Table!",
			want:    "add_song_table",
		},
		{
			name:    "leading and trailing separators",
			message: "  add column  ",
			want:    "add_column",
		},
		{
			name:    "collapses separator runs",
			message: "drop -- songs",
			want:    "drop_songs",
		},
		{
			name:    "empty message",
			message: "",
			want:    "",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := Slugify(tt.message)
			if got != tt.want {
				t.Errorf("Slugify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewRevisionID(t *testing.T) {
	id := NewRevisionID()

	if len(id) != 12 {
		t.Errorf("expected 12 character id, got %d (%s)", len(id), id)
	}

	for _, r := range id {
		if !strings.ContainsRune("0123456789abcdef", r) {
			t.Errorf("expected hex characters only, got %q in %s", r, id)
		}
	}

	if NewRevisionID() == id {
		t.Error("expected distinct ids from successive calls")
	}
}

func TestGenerateID(t *testing.T) {
	id := GenerateID()
	if len(id) != 36 {
		t.Errorf("expected uuid string, got %s", id)
	}
}
