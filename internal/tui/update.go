package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/rentbuy/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.formModel.SetSize(msg.Width, msg.Height)
		m.resultsModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		m.currentScene = msg.Scene
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case tuimsg.CalculateRequestedMsg:
		ctx, cancel := context.WithCancel(context.Background())
		m.cancel = cancel
		m.loading = true
		m.err = nil
		m.loadingMessage = fmt.Sprintf("Simulating %d scenarios...", msg.Config.Simulation.NumScenarios)
		m.adjustments = msg.Adjustments
		return m, tea.Batch(m.spinner.Tick, runSimulationCmd(ctx, msg.Config))

	case tuimsg.SimulationCompleteMsg:
		m.loading = false
		if m.cancel != nil {
			m.cancel()
			m.cancel = nil
		}
		if msg.Err != nil {
			if !errors.Is(msg.Err, context.Canceled) {
				m.err = msg.Err
			}
			return m, nil
		}
		m.resultsModel.SetSummary(msg.Summary, m.adjustments)
		m.currentScene = SceneResults
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case "esc":
		if m.loading {
			m.cancel()
			return m, nil
		}
		if m.err != nil {
			m.err = nil
			return m, nil
		}
		if m.currentScene == SceneResults {
			return m, func() tea.Msg { return NavigateMsg{Scene: SceneForm} }
		}
		return m, nil

	case "q":
		// the form needs q as text
		if m.currentScene == SceneResults {
			return m, tea.Quit
		}
	}

	if m.loading {
		return m, nil
	}
	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.currentScene {
	case SceneForm:
		updated, cmd := m.formModel.Update(msg)
		m.formModel = updated
		return m, cmd
	case SceneResults:
		return m, nil
	}
	return m, nil
}
