package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/rentbuy/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages named scenario variations
type TemplateRegistry struct {
	templates map[string]Template
}

// Template is a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ConfigTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns the sorted names of all registered templates
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a registry of common what-if variations
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()
	point := decimal.NewFromFloat(0.01)

	registry.Register(Template{
		Name:        "rates_up_1pt",
		Description: "Mortgage rate one percentage point higher",
		Transforms:  []ConfigTransform{&AdjustInterestRate{Delta: point}},
	})
	registry.Register(Template{
		Name:        "rates_down_1pt",
		Description: "Mortgage rate one percentage point lower",
		Transforms:  []ConfigTransform{&AdjustInterestRate{Delta: point.Neg()}},
	})
	registry.Register(Template{
		Name:        "rent_up_10pct",
		Description: "Monthly rent 10% higher",
		Transforms:  []ConfigTransform{&ScaleRent{Factor: decimal.NewFromFloat(1.1)}},
	})
	registry.Register(Template{
		Name:        "save_more_500",
		Description: "Save $500 more every month",
		Transforms:  []ConfigTransform{&AdjustMonthlySavings{Delta: decimal.NewFromInt(500)}},
	})
	registry.Register(Template{
		Name:        "deposit_plus_50k",
		Description: "Start with $50,000 more in savings",
		Transforms:  []ConfigTransform{&AdjustInitialSavings{Delta: decimal.NewFromInt(50000)}},
	})
	registry.Register(Template{
		Name:        "hot_market",
		Description: "Home prices grow 5% a year with the default volatility",
		Transforms:  []ConfigTransform{&SetAppreciation{Mean: 0.05, StdDev: 0.0285}},
	})
	registry.Register(Template{
		Name:        "flat_market",
		Description: "Home prices flat on average",
		Transforms:  []ConfigTransform{&SetAppreciation{Mean: 0, StdDev: 0.0285}},
	})
	registry.Register(Template{
		Name:        "ten_years",
		Description: "Simulate ten years instead of the configured horizon",
		Transforms:  []ConfigTransform{&SetHorizon{Months: 120}},
	})
	registry.Register(Template{
		Name:        "frugal",
		Description: "Save $500 more a month and start with $50,000 more",
		Transforms: []ConfigTransform{
			&AdjustMonthlySavings{Delta: decimal.NewFromInt(500)},
			&AdjustInitialSavings{Delta: decimal.NewFromInt(50000)},
		},
	})
	registry.Register(Template{
		Name:        "tight_market",
		Description: "Rates one point higher and rent 10% higher",
		Transforms: []ConfigTransform{
			&AdjustInterestRate{Delta: point},
			&ScaleRent{Factor: decimal.NewFromFloat(1.1)},
		},
	})

	return registry
}

// ApplyTemplate applies every transform of a template to base
func ApplyTemplate(base *domain.SimulationConfig, template Template) (*domain.SimulationConfig, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}
	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")
	for _, name := range registry.List() {
		t := registry.templates[name]
		sb.WriteString(fmt.Sprintf("  %-20s %s\n", t.Name, t.Description))
	}
	sb.WriteString("\nUsage:\n")
	sb.WriteString("  rentbuy compare base.yaml --with rates_up_1pt,hot_market\n")
	sb.WriteString("  rentbuy compare base.yaml alternative.yaml\n")
	return sb.String()
}
