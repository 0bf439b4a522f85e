package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TransformRegistry creates transforms by name from string parameters, the
// form they take on the command line
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory creates a transform from parameters
type TransformFactory func(params map[string]string) (ConfigTransform, error)

// NewTransformRegistry creates a registry with every built-in transform
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("scale_rent", createScaleRent)
	registry.Register("adjust_monthly_savings", createAdjustMonthlySavings)
	registry.Register("adjust_initial_savings", createAdjustInitialSavings)
	registry.Register("adjust_interest_rate", createAdjustInterestRate)
	registry.Register("adjust_savings_rate", createAdjustSavingsRate)
	registry.Register("set_appreciation", createSetAppreciation)
	registry.Register("set_horizon", createSetHorizon)
	registry.Register("set_price_range", createSetPriceRange)

	return registry
}

// Register adds a transform factory to the registry
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters
func (r *TransformRegistry) Create(name string, params map[string]string) (ConfigTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}
	return factory(params)
}

// List returns the sorted names of all registered transforms
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses "name:key=value,key=value",
// e.g. "adjust_interest_rate:delta=0.01"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ConfigTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, pair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(pair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", pair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

func decimalParam(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return v, nil
}

func floatParam(transform string, params map[string]string, key string) (float64, error) {
	raw, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return v, nil
}

func createScaleRent(params map[string]string) (ConfigTransform, error) {
	factor, err := decimalParam("scale_rent", params, "factor")
	if err != nil {
		return nil, err
	}
	return &ScaleRent{Factor: factor}, nil
}

func createAdjustMonthlySavings(params map[string]string) (ConfigTransform, error) {
	delta, err := decimalParam("adjust_monthly_savings", params, "delta")
	if err != nil {
		return nil, err
	}
	return &AdjustMonthlySavings{Delta: delta}, nil
}

func createAdjustInitialSavings(params map[string]string) (ConfigTransform, error) {
	delta, err := decimalParam("adjust_initial_savings", params, "delta")
	if err != nil {
		return nil, err
	}
	return &AdjustInitialSavings{Delta: delta}, nil
}

func createAdjustInterestRate(params map[string]string) (ConfigTransform, error) {
	delta, err := decimalParam("adjust_interest_rate", params, "delta")
	if err != nil {
		return nil, err
	}
	return &AdjustInterestRate{Delta: delta}, nil
}

func createAdjustSavingsRate(params map[string]string) (ConfigTransform, error) {
	delta, err := decimalParam("adjust_savings_rate", params, "delta")
	if err != nil {
		return nil, err
	}
	return &AdjustSavingsRate{Delta: delta}, nil
}

func createSetAppreciation(params map[string]string) (ConfigTransform, error) {
	mean, err := floatParam("set_appreciation", params, "mean")
	if err != nil {
		return nil, err
	}
	stdDev, err := floatParam("set_appreciation", params, "std_dev")
	if err != nil {
		return nil, err
	}
	return &SetAppreciation{Mean: mean, StdDev: stdDev}, nil
}

func createSetHorizon(params map[string]string) (ConfigTransform, error) {
	raw, ok := params["months"]
	if !ok {
		return nil, fmt.Errorf("set_horizon requires 'months' parameter")
	}
	months, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid months value: %w", err)
	}
	return &SetHorizon{Months: months}, nil
}

func createSetPriceRange(params map[string]string) (ConfigTransform, error) {
	lo, err := decimalParam("set_price_range", params, "min")
	if err != nil {
		return nil, err
	}
	hi, err := decimalParam("set_price_range", params, "max")
	if err != nil {
		return nil, err
	}
	return &SetPriceRange{Min: lo, Max: hi}, nil
}
