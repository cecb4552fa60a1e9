package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/trek/internal/migrate"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	RevisionListView ViewState = iota
	ConfirmView
	ResultView
)

// opKind distinguishes the two engine operations the TUI can run.
type opKind int

const (
	opUpgrade opKind = iota
	opDowngrade
)

// pendingOp is an operation awaiting confirmation.
type pendingOp struct {
	kind   opKind
	target string
	steps  int
	label  string
}

// Model represents the TUI application state.
type Model struct {
	engine       *migrate.Engine
	view         ViewState
	width        int
	height       int
	revisionList list.Model
	statuses     []migrate.RevisionStatus
	current      *migrate.Script
	pending      *pendingOp
	lastOp       *pendingOp
	changed      int
	err          error
	help         help.Model
	keys         keyMap
}

type historyLoadedMsg struct {
	statuses []migrate.RevisionStatus
	current  *migrate.Script
	err      error
}

type opDoneMsg struct {
	changed int
	err     error
}

// NewModel creates a new TUI model around a [migrate.Engine].
func NewModel(engine *migrate.Engine) *Model {
	revisionList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	revisionList.Title = "Revision History"

	return &Model{
		engine:       engine,
		view:         RevisionListView,
		revisionList: revisionList,
		help:         help.New(),
		keys:         newKeyMap(),
	}
}

// Init initializes the TUI by loading the revision history.
func (m *Model) Init() tea.Cmd {
	return m.loadHistory()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.revisionList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case RevisionListView:
			return m.handleListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case historyLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.statuses = msg.statuses
		m.current = msg.current
		items := make([]list.Item, len(msg.statuses))
		for i, status := range msg.statuses {
			current := msg.current != nil && status.Script.ID == msg.current.ID
			items[i] = revisionItem{status: status, current: current}
		}
		cmd := m.revisionList.SetItems(items)
		if m.width > 0 {
			m.revisionList.SetSize(m.width-4, m.height-8)
		}
		return m, cmd

	case opDoneMsg:
		m.changed = msg.changed
		m.err = msg.err
		m.lastOp = m.pending
		m.pending = nil
		m.view = ResultView
		return m, nil
	}

	return m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case RevisionListView:
		return m.renderList()
	case ConfirmView:
		return m.renderConfirm()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "u":
		if m.hasPending() {
			m.pending = &pendingOp{kind: opUpgrade, target: "head", label: "Upgrade to head"}
			m.view = ConfirmView
		}
		return m, nil
	case "d":
		if m.current != nil {
			m.pending = &pendingOp{kind: opDowngrade, steps: 1, label: "Downgrade one revision"}
			m.view = ConfirmView
		}
		return m, nil
	case "enter":
		if item, ok := m.revisionList.SelectedItem().(revisionItem); ok {
			if op := m.opFor(item); op != nil {
				m.pending = op
				m.view = ConfirmView
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.revisionList, cmd = m.revisionList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.pending = nil
		m.view = RevisionListView
		return m, nil
	case "y":
		return m, m.runPending()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r", "esc":
		m.view = RevisionListView
		m.err = nil
		m.changed = 0
		return m, m.loadHistory()
	}
	return m, nil
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.view == RevisionListView {
		m.revisionList, cmd = m.revisionList.Update(msg)
	}
	return m, cmd
}

// hasPending reports whether any revision on the chain is unapplied.
func (m *Model) hasPending() bool {
	for _, status := range m.statuses {
		if !status.Applied {
			return true
		}
	}
	return false
}

// opFor derives the operation that would make the selected revision current.
func (m *Model) opFor(item revisionItem) *pendingOp {
	id := item.status.Script.ID
	if item.current {
		return nil
	}
	if item.status.Applied {
		return &pendingOp{
			kind:   opDowngrade,
			target: id,
			label:  fmt.Sprintf("Downgrade to %s", id),
		}
	}
	return &pendingOp{
		kind:   opUpgrade,
		target: id,
		label:  fmt.Sprintf("Upgrade to %s", id),
	}
}

func (m *Model) loadHistory() tea.Cmd {
	return func() tea.Msg {
		statuses, err := m.engine.History()
		if err != nil {
			return historyLoadedMsg{err: err}
		}
		current, err := m.engine.Current()
		return historyLoadedMsg{statuses: statuses, current: current, err: err}
	}
}

func (m *Model) runPending() tea.Cmd {
	op := m.pending
	return func() tea.Msg {
		var changed int
		var err error
		switch op.kind {
		case opUpgrade:
			changed, err = m.engine.Upgrade(op.target)
		case opDowngrade:
			changed, err = m.engine.Downgrade(op.target, op.steps)
		}
		return opDoneMsg{changed: changed, err: err}
	}
}

func (m *Model) renderList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.upgrade, m.keys.downgrade, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.revisionList.View(), helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("%s?", m.pending.label))

	currentID := "base"
	if m.current != nil {
		currentID = m.current.ID
	}
	info := fmt.Sprintf("\nCurrent revision: %s\n", currentID)

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderResult() string {
	helpKeys := []key.Binding{m.keys.refresh, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	if m.err != nil {
		body := styles.err.Render(fmt.Sprintf("Migration failed: %v", m.err))
		return fmt.Sprintf("%s\n\n%s", body, helpView)
	}

	verb := "applied"
	if m.lastOp != nil && m.lastOp.kind == opDowngrade {
		verb = "reverted"
	}
	title := styles.ok.Render("✓ Done")
	info := fmt.Sprintf("\n%d revision(s) %s\n", m.changed, verb)

	return fmt.Sprintf("%s%s\n%s", title, info, helpView)
}
