package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/rgehrsitz/rentbuy/internal/compare"
	"github.com/rgehrsitz/rentbuy/internal/config"
	"github.com/rgehrsitz/rentbuy/internal/transform"
	"github.com/spf13/cobra"
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [base-file] [alternative-files...]",
		Short: "Compare a household against what-if variations",
		Long: `Simulates a base configuration and each alternative with the same seed and
reports how the median outcomes move. Alternatives come from extra input files,
built-in templates (--with) and ad-hoc transforms (--transform).

Examples:
  rentbuy compare household.yaml --with rates_up_1pt,hot_market
  rentbuy compare household.yaml --transform "scale_rent:factor=1.2"
  rentbuy compare household.yaml cheaper-flat.yaml --format csv
  rentbuy compare --list-templates`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if list, _ := cmd.Flags().GetBool("list-templates"); list {
				fmt.Fprint(out, transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
				return nil
			}

			format, _ := cmd.Flags().GetString("format")
			switch format {
			case "table", "compact", "csv", "json":
			default:
				return fmt.Errorf("unknown output format %q (valid: table, compact, csv, json)", format)
			}

			base, err := loadConfiguration(args[:min(len(args), 1)])
			if err != nil {
				return err
			}
			baseName := "default"
			configPath := ""
			if len(args) > 0 {
				configPath = args[0]
				baseName = scenarioName(args[0])
			}
			if cmd.Flags().Changed("seed") {
				seed, _ := cmd.Flags().GetInt64("seed")
				base.Simulation.Seed = &seed
			}

			engine := compare.NewCompareEngine()
			engine.Logger = newLogger(cmd)

			var alternatives []compare.NamedConfig
			if len(args) > 1 {
				parser := config.NewInputParser()
				for _, path := range args[1:] {
					cfg, err := parser.LoadFromFile(path)
					if err != nil {
						return err
					}
					alternatives = append(alternatives, compare.NamedConfig{Name: scenarioName(path), Config: cfg})
				}
			}

			with, _ := cmd.Flags().GetString("with")
			fromTemplates, err := engine.TemplateAlternatives(base, transform.ParseTemplateList(with))
			if err != nil {
				return err
			}
			alternatives = append(alternatives, fromTemplates...)

			specs, _ := cmd.Flags().GetStringArray("transform")
			fromTransforms, err := engine.TransformAlternatives(base, specs)
			if err != nil {
				return err
			}
			alternatives = append(alternatives, fromTransforms...)

			if len(alternatives) == 0 {
				return fmt.Errorf("nothing to compare: pass alternative files, --with templates or --transform specs")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			set, err := engine.CompareScenarios(ctx, compare.NamedConfig{Name: baseName, Config: base}, alternatives)
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			set.ConfigPath = configPath

			var rendered string
			switch format {
			case "csv":
				rendered, err = (&compare.CSVFormatter{}).Format(set)
			case "json":
				rendered, err = (&compare.JSONFormatter{Pretty: true}).Format(set)
				rendered += "\n"
			case "compact":
				rendered = (&compare.TableFormatter{}).FormatCompact(set) + "\n"
			default:
				rendered = (&compare.TableFormatter{}).Format(set)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(out, rendered)
			return err
		},
	}

	cmd.Flags().String("with", "", "Comma-separated list of templates to compare")
	cmd.Flags().StringArray("transform", nil, `Ad-hoc transform "name:key=value,..." (repeatable)`)
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().Int64("seed", 0, "Seed shared by every configuration (default: from the base file, else the clock)")
	cmd.Flags().Bool("list-templates", false, "List all available scenario templates")
	return cmd
}

// scenarioName names a configuration after its file
func scenarioName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
