package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"trendscout/state"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case TickMsg:
		return m, tea.Batch(pollStatus(m.Client), tickCmd())
	case StatusUpdateMsg:
		return m.handleStatusUpdate(msg)
	case RunStartedMsg:
		return m.handleRunStarted(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r", "R":
		if m.Connected && (m.Status == nil || !isRunning(m.Status.State)) {
			return m, triggerRun(m.Client)
		}
	}
	return m, nil
}

// handleStatusUpdate stores the latest snapshot
func (m Model) handleStatusUpdate(msg StatusUpdateMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Connected = false
		m.Err = msg.Err
		return m, nil
	}
	m.Connected = true
	m.Err = nil
	m.Status = msg.Status
	return m, nil
}

// handleRunStarted surfaces trigger failures; progress arrives by polling
func (m Model) handleRunStarted(msg RunStartedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Err = msg.Err
	}
	return m, nil
}

func isRunning(s state.State) bool {
	switch s {
	case state.StateIdle, state.StateComplete, state.StateError:
		return false
	}
	return true
}
