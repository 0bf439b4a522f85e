package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/rentbuy/internal/analysis"
	"github.com/rgehrsitz/rentbuy/internal/domain"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a standalone HTML report of the summary
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
	"money": func(v float64) string {
		return FormatCurrency(decimal.NewFromFloat(v))
	},
	"bar": func(n, most int) int {
		return scaled(n, most, 100)
	},
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(results *domain.SimulationResult) ([]byte, error) {
	summary, err := analysis.Summarize(results, analysis.DefaultHistogramBins)
	if err != nil {
		return nil, err
	}

	most := 0
	for _, b := range summary.Histogram {
		if n := b.Buy + b.Rent; n > most {
			most = n
		}
	}

	var buf bytes.Buffer
	data := struct {
		*analysis.Summary
		MostPerBin  int
		Assumptions []string
	}{summary, most, DefaultAssumptions}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
