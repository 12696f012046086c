package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/dagflow/internal/tui/components"
)

// NodeDoneMsg reports that a node finished executing, successfully or not.
// It mirrors scheduler.Options.OnNodeDone's callback shape so a caller can
// forward that callback straight into a running tea.Program via Send.
type NodeDoneMsg struct {
	ID  string
	Err error
}

type tickMsg struct{}

// Model is the Bubbletea state for the minimal execution progress view: a
// single progress bar plus a per-node status list, driven entirely by
// NodeDoneMsg values.
type Model struct {
	title     string
	order     []string
	statuses  map[string]components.NodeStatus
	errs      map[string]string
	total     int
	completed int
	failed    int
	finished  bool
	cancelled bool
}

// NewModel constructs a Model tracking the given nodes, in the order they
// appear in the executed graph.
func NewModel(title string, nodeIDs []string) Model {
	statuses := make(map[string]components.NodeStatus, len(nodeIDs))
	for _, id := range nodeIDs {
		statuses[id] = components.NodeStatusPending
	}
	return Model{
		title:    title,
		order:    append([]string(nil), nodeIDs...),
		statuses: statuses,
		errs:     make(map[string]string),
		total:    len(nodeIDs),
	}
}

// Init starts the Bubbletea program.
func (m Model) Init() tea.Cmd {
	return nil
}

// TotalNodes returns the total number of nodes tracked by the model.
func (m Model) TotalNodes() int { return m.total }

// CompletedNodes returns the number of nodes that have finished, successfully
// or not.
func (m Model) CompletedNodes() int { return m.completed }

// IsFinished reports whether every tracked node has finished.
func (m Model) IsFinished() bool { return m.finished }

func (m *Model) markNodeDone(id string, err error) {
	if id == "" {
		return
	}
	if _, tracked := m.statuses[id]; !tracked {
		m.order = append(m.order, id)
		m.total++
	}
	if err != nil {
		m.statuses[id] = components.NodeStatusFailed
		m.errs[id] = err.Error()
		m.failed++
	} else {
		m.statuses[id] = components.NodeStatusSucceeded
	}
	m.completed++
	if m.total > 0 && m.completed >= m.total {
		m.finished = true
	}
}
