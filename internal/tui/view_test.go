package tui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/dagflow/internal/tui/components"
)

func TestViewRendersBasicLayout(t *testing.T) {
	m := NewModel("Test Pipeline", []string{"n1", "n2"})
	updated, _ := m.Update(NodeDoneMsg{ID: "n1"})
	m = updated.(Model)

	view := m.View()
	require.Contains(t, view, "Test Pipeline")
	require.Contains(t, view, "n1")
	require.Contains(t, view, "n2")
}

func TestViewShowsNodeError(t *testing.T) {
	m := NewModel("", []string{"n1"})
	updated, _ := m.Update(NodeDoneMsg{ID: "n1", Err: errors.New("boom")})
	m = updated.(Model)

	view := m.View()
	require.Contains(t, view, "boom")
}

func TestViewShowsSummaryWhenFinished(t *testing.T) {
	m := NewModel("Finished", []string{"n1", "n2", "n3", "n4"})
	m.finished = true
	m.completed = 3
	m.total = 4

	view := m.View()
	require.Contains(t, view, "Finished")
	require.Contains(t, view, "3/4")
}

func TestStatusIcon(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   components.NodeStatus
		expected string
	}{
		{"succeeded shows checkmark", components.NodeStatusSucceeded, "✓"},
		{"running shows hourglass", components.NodeStatusRunning, "⏳"},
		{"failed shows cross", components.NodeStatusFailed, "✗"},
		{"pending shows ellipsis", components.NodeStatusPending, "…"},
		{"unknown shows ellipsis", components.NodeStatus("unknown"), "…"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			icon := StatusIcon(tt.status)
			require.Contains(t, icon, tt.expected)
		})
	}
}
