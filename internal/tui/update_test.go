package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/dagflow/internal/tui/components"
)

func TestUpdateHandlesNodeSuccess(t *testing.T) {
	m := NewModel("", []string{"n1"})
	updated, _ := m.Update(NodeDoneMsg{ID: "n1"})
	m = updated.(Model)
	require.Equal(t, components.NodeStatusSucceeded, m.statuses["n1"])
	require.Equal(t, 1, m.completed)
}

func TestUpdateHandlesNodeFailure(t *testing.T) {
	m := NewModel("", []string{"n1"})
	updated, _ := m.Update(NodeDoneMsg{ID: "n1", Err: errors.New("missing path")})
	m = updated.(Model)
	require.Equal(t, components.NodeStatusFailed, m.statuses["n1"])
	require.Equal(t, "missing path", m.errs["n1"])
}

func TestUpdateQuitsWhenAllNodesDone(t *testing.T) {
	m := NewModel("", []string{"n1"})
	updated, cmd := m.Update(NodeDoneMsg{ID: "n1"})
	m = updated.(Model)
	require.True(t, m.finished)
	require.NotNil(t, cmd)
}

func TestUpdateHandlesCtrlC(t *testing.T) {
	m := NewModel("", []string{"n1", "n2"})
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	m = updated.(Model)
	require.True(t, m.cancelled)
	require.True(t, m.finished)
}
