package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/rentbuy/internal/config"
	"github.com/rgehrsitz/rentbuy/internal/domain"
	"github.com/rgehrsitz/rentbuy/internal/tui"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(
		tui.NewModel(cfg),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the optional configuration file that pre-fills the form
func loadConfig(args []string) (*domain.SimulationConfig, error) {
	switch len(args) {
	case 0:
		return config.DefaultConfiguration(), nil
	case 1:
		return config.NewInputParser().LoadFromFile(args[0])
	default:
		return nil, fmt.Errorf("usage: rentbuy-tui [config-file]")
	}
}
