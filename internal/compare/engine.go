package compare

import (
	"context"
	"fmt"
	"time"

	"github.com/rgehrsitz/rentbuy/internal/analysis"
	"github.com/rgehrsitz/rentbuy/internal/calculation"
	"github.com/rgehrsitz/rentbuy/internal/config"
	"github.com/rgehrsitz/rentbuy/internal/domain"
	"github.com/rgehrsitz/rentbuy/internal/transform"
)

// EvaluateFunc runs one batch and summarizes it
type EvaluateFunc func(ctx context.Context, cfg *domain.SimulationConfig) (*analysis.Summary, error)

// NamedConfig is a configuration with a display name
type NamedConfig struct {
	Name        string
	Description string
	Config      *domain.SimulationConfig
}

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	Evaluate          EvaluateFunc
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	Logger            calculation.Logger
}

// NewCompareEngine creates a comparison engine that simulates with the
// calculation runner
func NewCompareEngine() *CompareEngine {
	return &CompareEngine{
		Evaluate:          runBatch,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		Logger:            calculation.NopLogger{},
	}
}

// CompareOptions configures template comparisons
type CompareOptions struct {
	BaseScenarioName string   // Display name of the base configuration
	Templates        []string // List of template names to apply
}

// Compare simulates base and one alternative per template
func (ce *CompareEngine) Compare(
	ctx context.Context,
	base *domain.SimulationConfig,
	options CompareOptions,
) (*ComparisonSet, error) {
	if base == nil {
		return nil, fmt.Errorf("base configuration is required")
	}

	alternatives, err := ce.TemplateAlternatives(base, options.Templates)
	if err != nil {
		return nil, err
	}

	return ce.CompareScenarios(ctx, NamedConfig{Name: options.BaseScenarioName, Config: base}, alternatives)
}

// TemplateAlternatives applies each named template to base
func (ce *CompareEngine) TemplateAlternatives(base *domain.SimulationConfig, names []string) ([]NamedConfig, error) {
	registry := ce.TemplateRegistry
	if registry == nil {
		registry = transform.CreateBuiltInTemplates()
	}

	alternatives := make([]NamedConfig, 0, len(names))
	for _, name := range names {
		template, ok := registry.Get(name)
		if !ok {
			return nil, fmt.Errorf("template %s not found", name)
		}
		modified, err := transform.ApplyTemplate(base, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", name, err)
		}
		alternatives = append(alternatives, NamedConfig{
			Name:        template.Name,
			Description: template.Description,
			Config:      modified,
		})
	}
	return alternatives, nil
}

// TransformAlternatives builds one alternative per transform spec
// ("name:key=value,..."), named by the spec itself
func (ce *CompareEngine) TransformAlternatives(base *domain.SimulationConfig, specs []string) ([]NamedConfig, error) {
	registry := transform.NewTransformRegistry()

	alternatives := make([]NamedConfig, 0, len(specs))
	for _, spec := range specs {
		t, err := registry.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		modified, err := transform.ApplyTransforms(base, []transform.ConfigTransform{t})
		if err != nil {
			return nil, err
		}
		alternatives = append(alternatives, NamedConfig{
			Name:        spec,
			Description: t.Description(),
			Config:      modified,
		})
	}
	return alternatives, nil
}

// CompareScenarios simulates explicit configurations. Every configuration
// runs with the base's seed (or one fresh seed when the base has none) so
// scenario i sees the same random draws everywhere.
func (ce *CompareEngine) CompareScenarios(
	ctx context.Context,
	base NamedConfig,
	alternatives []NamedConfig,
) (*ComparisonSet, error) {
	if base.Config == nil {
		return nil, fmt.Errorf("base configuration is required")
	}
	if base.Name == "" {
		base.Name = "base"
	}

	seed := time.Now().UnixNano()
	if base.Config.Simulation.Seed != nil {
		seed = *base.Config.Simulation.Seed
	}

	baseSummary, err := ce.run(ctx, base.Config, seed)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult := ce.calculator().CalculateMetrics(base.Name, baseSummary)
	baseResult.Description = base.Description

	results := make([]ComparisonResult, 0, len(alternatives))
	for _, alt := range alternatives {
		if alt.Config == nil {
			return nil, fmt.Errorf("alternative scenario %s has no configuration", alt.Name)
		}
		summary, err := ce.run(ctx, alt.Config, seed)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", alt.Name, err)
		}

		altResult := ce.calculator().CalculateMetrics(alt.Name, summary)
		altResult.Description = alt.Description
		altResult = ce.calculator().CalculateComparison(altResult, baseResult)
		results = append(results, altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   base.Name,
		Seed:               seed,
		BaseResult:         &baseResult,
		AlternativeResults: results,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet, nil
}

// run normalizes and validates a copy of cfg, then simulates it with seed
func (ce *CompareEngine) run(ctx context.Context, cfg *domain.SimulationConfig, seed int64) (*analysis.Summary, error) {
	cfg = cfg.DeepCopy()
	cfg.Simulation.Seed = &seed
	for _, note := range config.Normalize(cfg) {
		ce.logger().Warnf("%s", note)
	}
	if err := config.NewInputParser().ValidateConfiguration(cfg); err != nil {
		return nil, err
	}

	evaluate := ce.Evaluate
	if evaluate == nil {
		evaluate = runBatch
	}
	return evaluate(ctx, cfg)
}

func (ce *CompareEngine) calculator() *MetricsCalculator {
	if ce.MetricsCalculator == nil {
		ce.MetricsCalculator = NewMetricsCalculator()
	}
	return ce.MetricsCalculator
}

func runBatch(ctx context.Context, cfg *domain.SimulationConfig) (*analysis.Summary, error) {
	return analysis.RunBatch(ctx, cfg)
}

func (ce *CompareEngine) logger() calculation.Logger {
	if ce.Logger == nil {
		return calculation.NopLogger{}
	}
	return ce.Logger
}
