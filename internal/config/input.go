package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/rgehrsitz/rentbuy/internal/calculation"
	"github.com/rgehrsitz/rentbuy/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of simulation configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a configuration from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.SimulationConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.LoadFromBytes(data)
}

// LoadFromBytes parses a configuration on top of DefaultConfiguration, so a
// file only needs the values it changes. Values written explicitly, zeros
// included, are validated as given; only the price range is normalized.
func (ip *InputParser) LoadFromBytes(data []byte) (*domain.SimulationConfig, error) {
	config := DefaultConfiguration()

	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	Normalize(config)

	if err := ip.ValidateConfiguration(config); err != nil {
		return nil, err
	}
	return config, nil
}

// ValidateConfiguration validates a loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.SimulationConfig) error {
	if config == nil {
		return domain.NewConfigurationError("", "configuration is required")
	}
	if err := ip.validateSimulation(&config.Simulation); err != nil {
		return fmt.Errorf("simulation settings validation failed: %w", err)
	}
	if err := calculation.ParamsFromConfig(config).Validate(); err != nil {
		return fmt.Errorf("household validation failed: %w", err)
	}
	if err := ip.validateCalibration(&config.Calibration); err != nil {
		return fmt.Errorf("calibration validation failed: %w", err)
	}
	if _, err := calculation.NewLTVRateTable(config.RateTable); err != nil {
		return fmt.Errorf("rate table validation failed: %w", err)
	}
	return nil
}

func (ip *InputParser) validateSimulation(sim *domain.SimulationSettings) error {
	if sim.HorizonMonths <= 0 {
		return domain.NewConfigurationError("horizon_months", "must be positive, got %d", sim.HorizonMonths)
	}
	if sim.Workers < 0 {
		return domain.NewConfigurationError("workers", "cannot be negative, got %d", sim.Workers)
	}

	if len(sim.PurchasePrices) > 0 {
		for i, p := range sim.PurchasePrices {
			if !p.IsPositive() {
				return domain.NewConfigurationError("purchase_prices", "price %d must be positive, got %s", i, p)
			}
		}
		return nil
	}

	if sim.NumScenarios <= 0 {
		return domain.NewConfigurationError("num_scenarios", "must be positive, got %d", sim.NumScenarios)
	}
	if !sim.PriceIncrement.IsPositive() {
		return domain.NewConfigurationError("price_increment", "must be positive, got %s", sim.PriceIncrement)
	}
	if !sim.PriceMin.IsPositive() {
		return domain.NewConfigurationError("price_min", "must be positive, got %s", sim.PriceMin)
	}
	if sim.PriceMax.LessThan(sim.PriceMin) {
		return domain.NewConfigurationError("price_max", "%s is below price_min %s", sim.PriceMax, sim.PriceMin)
	}
	return nil
}

func (ip *InputParser) validateCalibration(c *domain.CalibrationSettings) error {
	if c.TargetConfidence <= 0 || c.TargetConfidence > 1 {
		return domain.NewConfigurationError("target_confidence", "must be in (0, 1], got %v", c.TargetConfidence)
	}
	if _, err := calculation.ProbabilityGrid(c.ProbabilityGridStep); err != nil {
		return err
	}
	return nil
}

// Normalize clamps the purchase price range the way the input form does:
// the minimum is raised to AbsoluteMinPrice and the maximum to at least one
// increment above the minimum. It returns a description of each adjustment.
func Normalize(config *domain.SimulationConfig) []string {
	var adjusted []string
	sim := &config.Simulation

	if sim.PriceMin.LessThan(AbsoluteMinPrice) {
		adjusted = append(adjusted, fmt.Sprintf("price_min raised from %s to %s", sim.PriceMin, AbsoluteMinPrice))
		sim.PriceMin = AbsoluteMinPrice
	}
	if floor := sim.PriceMin.Add(sim.PriceIncrement); sim.PriceMax.LessThan(floor) {
		adjusted = append(adjusted, fmt.Sprintf("price_max raised from %s to %s", sim.PriceMax, floor))
		sim.PriceMax = floor
	}
	return adjusted
}

// Marshal renders a configuration as YAML
func Marshal(config *domain.SimulationConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(config); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return buf.Bytes(), nil
}
