package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/rentbuy/internal/analysis"
	"github.com/rgehrsitz/rentbuy/internal/domain"
	"github.com/rgehrsitz/rentbuy/internal/tui/scenes"
	"github.com/rgehrsitz/rentbuy/internal/tui/tuimsg"
	"github.com/rgehrsitz/rentbuy/internal/tui/tuistyles"
)

// Model represents the entire application state
type Model struct {
	currentScene Scene

	// Terminal dimensions
	width  int
	height int

	formModel    *scenes.FormModel
	resultsModel *scenes.ResultsModel

	spinner        spinner.Model
	loading        bool
	loadingMessage string
	cancel         context.CancelFunc
	// adjustments to the inputs of the running batch
	adjustments []string

	err error
}

// NewModel creates the application model with the form pre-filled from cfg
func NewModel(cfg *domain.SimulationConfig) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = tuistyles.InfoStyle

	return Model{
		currentScene: SceneForm,
		formModel:    scenes.NewFormModel(cfg),
		resultsModel: scenes.NewResultsModel(),
		spinner:      sp,
		width:        80,
		height:       24,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// runSimulationCmd returns a command that runs the batch and summarizes it
func runSimulationCmd(ctx context.Context, cfg *domain.SimulationConfig) tea.Cmd {
	return func() tea.Msg {
		summary, err := analysis.RunBatch(ctx, cfg)
		return tuimsg.SimulationCompleteMsg{Summary: summary, Err: err}
	}
}

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneForm:
		return "Inputs"
	case SceneResults:
		return "Results"
	default:
		return "Unknown"
	}
}
