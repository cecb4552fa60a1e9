package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/trek/internal/migrate"
)

func sampleHistory() historyLoadedMsg {
	script := &migrate.Script{ID: "aaa111111111", Message: "create artists table"}
	return historyLoadedMsg{
		statuses: []migrate.RevisionStatus{{Script: script, Applied: true}},
		current:  script,
	}
}

func TestMessageOrdering(t *testing.T) {
	t.Run("window size before history load", func(t *testing.T) {
		m := NewModel(nil)

		// bubbletea delivers the window size at program start, before any
		// command has finished
		m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
		if m.revisionList.Width() != 76 {
			t.Errorf("unexpected list width: %d", m.revisionList.Width())
		}

		m.Update(sampleHistory())
		if len(m.revisionList.Items()) != 1 {
			t.Errorf("expected 1 list item, got %d", len(m.revisionList.Items()))
		}
		if !strings.Contains(m.View(), "Revision History") {
			t.Errorf("unexpected view:\n%s", m.View())
		}
	})

	t.Run("history load before window size", func(t *testing.T) {
		m := NewModel(nil)

		m.Update(sampleHistory())
		m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

		if m.revisionList.Width() != 76 {
			t.Errorf("unexpected list width: %d", m.revisionList.Width())
		}
		if len(m.revisionList.Items()) != 1 {
			t.Errorf("expected 1 list item, got %d", len(m.revisionList.Items()))
		}
	})

	t.Run("history load error quits", func(t *testing.T) {
		m := NewModel(nil)

		_, cmd := m.Update(historyLoadedMsg{err: errors.New("history failed")})
		if cmd == nil {
			t.Fatal("expected quit command on history load error")
		}
		if !strings.Contains(m.View(), "Error") {
			t.Errorf("unexpected view:\n%s", m.View())
		}
	})
}
