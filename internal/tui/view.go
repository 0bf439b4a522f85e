package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch {
	case m.loading:
		content = m.renderLoading()
	case m.err != nil:
		content = m.renderError()
	case m.currentScene == SceneResults:
		content = m.resultsModel.View()
	default:
		content = m.formModel.View()
	}
	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	return AppStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	))
}

// renderTitleBar renders the application title and the current scene
func (m Model) renderTitleBar() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Render("Rent vs Buy Calculator"),
		SubtitleStyle.Render(m.currentScene.String()),
		"",
	)
}

// renderStatusBar renders the keyboard shortcuts of the current scene
func (m Model) renderStatusBar() string {
	var shortcuts []string
	switch {
	case m.loading:
		shortcuts = []string{formatShortcut("esc", "cancel")}
	case m.err != nil:
		shortcuts = []string{formatShortcut("esc", "back")}
	case m.currentScene == SceneResults:
		shortcuts = []string{formatShortcut("esc", "edit inputs"), formatShortcut("q", "quit")}
	default:
		shortcuts = []string{
			formatShortcut("tab/↓", "next"),
			formatShortcut("shift+tab/↑", "previous"),
			formatShortcut("enter", "next / calculate"),
		}
	}
	shortcuts = append(shortcuts, formatShortcut("ctrl+c", "quit"))
	return StatusBarStyle.Render(strings.Join(shortcuts, " • "))
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

// renderLoading renders the spinner and loading message
func (m Model) renderLoading() string {
	return m.spinner.View() + " " + InfoStyle.Render(m.loadingMessage)
}

// renderError renders the last error
func (m Model) renderError() string {
	return ErrorStyle.Render("Error: " + m.err.Error())
}
