package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/rentbuy/internal/config"
	"github.com/rgehrsitz/rentbuy/internal/domain"
	"github.com/rgehrsitz/rentbuy/internal/tui/tuimsg"
	"github.com/rgehrsitz/rentbuy/internal/tui/tuistyles"
)

// formField binds one text input to a configuration amount
type formField struct {
	label string
	get   func(*domain.SimulationConfig) decimal.Decimal
	set   func(*domain.SimulationConfig, decimal.Decimal)
}

var formFields = []formField{
	{
		label: "Minimum house price",
		get:   func(c *domain.SimulationConfig) decimal.Decimal { return c.Simulation.PriceMin },
		set:   func(c *domain.SimulationConfig, v decimal.Decimal) { c.Simulation.PriceMin = v },
	},
	{
		label: "Maximum house price",
		get:   func(c *domain.SimulationConfig) decimal.Decimal { return c.Simulation.PriceMax },
		set:   func(c *domain.SimulationConfig, v decimal.Decimal) { c.Simulation.PriceMax = v },
	},
	{
		label: "Monthly savings",
		get:   func(c *domain.SimulationConfig) decimal.Decimal { return c.Household.MonthlySavings },
		set:   func(c *domain.SimulationConfig, v decimal.Decimal) { c.Household.MonthlySavings = v },
	},
	{
		label: "Purchase costs",
		get:   func(c *domain.SimulationConfig) decimal.Decimal { return c.Household.PurchaseCosts },
		set:   func(c *domain.SimulationConfig, v decimal.Decimal) { c.Household.PurchaseCosts = v },
	},
	{
		label: "Monthly rent",
		get:   func(c *domain.SimulationConfig) decimal.Decimal { return c.Household.MonthlyRent },
		set:   func(c *domain.SimulationConfig, v decimal.Decimal) { c.Household.MonthlyRent = v },
	},
	{
		label: "Initial savings",
		get:   func(c *domain.SimulationConfig) decimal.Decimal { return c.Household.InitialSavings },
		set:   func(c *domain.SimulationConfig, v decimal.Decimal) { c.Household.InitialSavings = v },
	},
	{
		label: "Home loan interest rate",
		get:   func(c *domain.SimulationConfig) decimal.Decimal { return c.Rates.AnnualInterestRate },
		set:   func(c *domain.SimulationConfig, v decimal.Decimal) { c.Rates.AnnualInterestRate = v },
	},
	{
		label: "Savings interest rate",
		get:   func(c *domain.SimulationConfig) decimal.Decimal { return c.Rates.AnnualSavingsRate },
		set:   func(c *domain.SimulationConfig, v decimal.Decimal) { c.Rates.AnnualSavingsRate = v },
	},
}

var (
	nextKey = key.NewBinding(key.WithKeys("tab", "down"))
	prevKey = key.NewBinding(key.WithKeys("shift+tab", "up"))
	submit  = key.NewBinding(key.WithKeys("enter"))
)

// FormModel is the input form. The focus index runs over the inputs and
// then the Calculate button.
type FormModel struct {
	base    *domain.SimulationConfig
	inputs  []textinput.Model
	focused int
	err     error
	width   int
}

// NewFormModel creates the form pre-filled from base
func NewFormModel(base *domain.SimulationConfig) *FormModel {
	m := &FormModel{base: base, inputs: make([]textinput.Model, len(formFields))}
	for i, f := range formFields {
		ti := textinput.New()
		ti.CharLimit = 12
		ti.Width = 14
		ti.SetValue(f.get(base).String())
		m.inputs[i] = ti
	}
	m.inputs[0].Focus()
	return m
}

// SetSize updates the model dimensions
func (m *FormModel) SetSize(width, height int) {
	m.width = width
}

// Focused returns the focus index; len(inputs) is the Calculate button
func (m *FormModel) Focused() int {
	return m.focused
}

// Err returns the last validation error
func (m *FormModel) Err() error {
	return m.err
}

// Update handles messages for the form
func (m *FormModel) Update(msg tea.Msg) (*FormModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, nextKey):
			return m, m.focus(m.focused + 1)
		case key.Matches(msg, prevKey):
			return m, m.focus(m.focused - 1)
		case key.Matches(msg, submit):
			if m.focused < len(m.inputs) {
				return m, m.focus(m.focused + 1)
			}
			return m, m.calculate()
		}
	}

	if m.focused < len(m.inputs) {
		var cmd tea.Cmd
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *FormModel) focus(i int) tea.Cmd {
	n := len(m.inputs) + 1
	m.focused = (i%n + n) % n
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	if m.focused < len(m.inputs) {
		return m.inputs[m.focused].Focus()
	}
	return nil
}

func (m *FormModel) calculate() tea.Cmd {
	cfg, adjustments, err := m.Config()
	m.err = err
	if err != nil {
		return nil
	}
	for i, f := range formFields {
		m.inputs[i].SetValue(f.get(cfg).String())
	}
	return func() tea.Msg {
		return tuimsg.CalculateRequestedMsg{Config: cfg, Adjustments: adjustments}
	}
}

// Config builds a configuration from the base with the form's values.
// Negative amounts are raised to zero, then the price range is clamped the
// way the configuration loader clamps it. Each adjustment is described in
// the returned notes.
func (m *FormModel) Config() (*domain.SimulationConfig, []string, error) {
	cfg := m.base.DeepCopy()
	cfg.Simulation.PurchasePrices = nil
	var adjustments []string
	for i, f := range formFields {
		raw := strings.ReplaceAll(strings.TrimSpace(m.inputs[i].Value()), ",", "")
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %q is not a number", f.label, m.inputs[i].Value())
		}
		if v.IsNegative() {
			adjustments = append(adjustments, fmt.Sprintf("%s raised from %s to 0", f.label, v))
			v = decimal.Zero
		}
		f.set(cfg, v)
	}

	adjustments = append(adjustments, config.Normalize(cfg)...)
	if err := config.NewInputParser().ValidateConfiguration(cfg); err != nil {
		return nil, nil, err
	}
	return cfg, adjustments, nil
}

// View renders the form
func (m *FormModel) View() string {
	var b strings.Builder
	for i, f := range formFields {
		label := tuistyles.LabelStyle.Render(f.label)
		if i == m.focused {
			label = tuistyles.FocusedLabelStyle.Render(f.label)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label, m.inputs[i].View()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	button := tuistyles.ButtonStyle.Render("Calculate")
	if m.focused == len(m.inputs) {
		button = tuistyles.FocusedButtonStyle.Render("Calculate")
	}
	b.WriteString(button)

	if m.err != nil {
		b.WriteString("\n\n")
		b.WriteString(tuistyles.ErrorStyle.Render("Error: " + m.err.Error()))
	}
	return b.String()
}
