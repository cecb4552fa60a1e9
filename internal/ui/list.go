package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/trek/internal/migrate"
)

var _ list.Item = revisionItem{}

// revisionItem wraps [migrate.RevisionStatus] to implement [list.Item].
type revisionItem struct {
	status  migrate.RevisionStatus
	current bool
}

func (i revisionItem) FilterValue() string {
	return i.status.Script.ID + " " + i.status.Script.Message
}

func (i revisionItem) Title() string {
	title := fmt.Sprintf("%s  %s", i.status.Script.ID, i.status.Script.Message)
	if i.current {
		title += "  (current)"
	}
	return title
}

func (i revisionItem) Description() string {
	if i.status.Applied {
		return fmt.Sprintf("applied %s", i.status.AppliedAt.Format("2006-01-02 15:04"))
	}
	return "pending"
}
