package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rgehrsitz/rentbuy/internal/domain"
	"github.com/shopspring/decimal"
)

// Formatter renders a simulation result in one output format
type Formatter interface {
	Name() string
	Format(results *domain.SimulationResult) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(results *domain.SimulationResult) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(results *domain.SimulationResult) ([]byte, error) {
	return f.F(results)
}

var registry = map[string]Formatter{}

// aliases maps alternative names onto registered formatters
var aliases = map[string]string{
	"records": "csv",
	"summary": "console",
	"text":    "console",
}

func register(f Formatter) {
	registry[f.Name()] = f
}

func init() {
	register(ConsoleFormatter{})
	register(CSVFormatter{})
	register(OutcomesCSVFormatter{})
	register(JSONFormatter{})
	register(HTMLFormatter{})
}

// GetFormatterByName returns the formatter registered under name or an
// alias of it, or nil
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if target, ok := aliases[name]; ok {
		name = target
	}
	return registry[name]
}

// AvailableFormatterNames lists the registered formatter names, sorted
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted aliases, sorted
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for alias := range aliases {
		names = append(names, alias)
	}
	sort.Strings(names)
	return names
}

// FileExtension is the file extension used when saving a formatter's output
func FileExtension(f Formatter) string {
	switch f.Name() {
	case "csv", "outcomes-csv":
		return "csv"
	case "json":
		return "json"
	case "html":
		return "html"
	default:
		return "txt"
	}
}

// WriteFormatted formats results and writes them to a timestamped file in
// the working directory, returning the file name
func WriteFormatted(f Formatter, results *domain.SimulationResult, ext string) (string, error) {
	filename := fmt.Sprintf("rentbuy_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := WriteToFile(f, results, filename); err != nil {
		return "", err
	}
	return filename, nil
}

// WriteToFile formats results and writes them to filename
func WriteToFile(f Formatter, results *domain.SimulationResult, filename string) error {
	data, err := f.Format(results)
	if err != nil {
		return fmt.Errorf("failed to format %s output: %w", f.Name(), err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

// FormatCurrency formats an amount as whole dollars with thousands separators
func FormatCurrency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	digits := amount.Round(0).StringFixed(0)

	var b strings.Builder
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return sign + "$" + b.String()
}

// FormatPercentage formats a fraction as a percentage
func FormatPercentage(fraction float64) string {
	return fmt.Sprintf("%.1f%%", fraction*100)
}
