package output

import (
	"encoding/json"

	"github.com/rgehrsitz/rentbuy/internal/analysis"
	"github.com/rgehrsitz/rentbuy/internal/domain"
)

// JSONFormatter emits the full result together with its summary
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(results *domain.SimulationResult) ([]byte, error) {
	summary, err := analysis.Summarize(results, analysis.DefaultHistogramBins)
	if err != nil {
		return nil, err
	}
	payload := struct {
		*domain.SimulationResult
		Summary *analysis.Summary `json:"summary"`
	}{results, summary}
	return json.MarshalIndent(payload, "", "  ")
}
