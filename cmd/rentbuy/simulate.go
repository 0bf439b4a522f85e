package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/rgehrsitz/rentbuy/internal/calculation"
	"github.com/rgehrsitz/rentbuy/internal/config"
	"github.com/rgehrsitz/rentbuy/internal/domain"
	"github.com/rgehrsitz/rentbuy/internal/output"
	"github.com/spf13/cobra"
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate [input-file]",
		Short: "Run the Monte Carlo batch and report the outcomes",
		Long: `Runs one scenario per purchase price over the configured horizon.
Without an input file the reference household is simulated.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd)

			format, _ := cmd.Flags().GetString("format")
			f := output.GetFormatterByName(format)
			if f == nil {
				return fmt.Errorf("unknown output format %q (valid: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
			}

			cfg, err := loadConfiguration(args)
			if err != nil {
				return err
			}

			opts := []calculation.RunnerOption{calculation.WithLogger(logger)}
			if cmd.Flags().Changed("seed") {
				seed, _ := cmd.Flags().GetInt64("seed")
				opts = append(opts, calculation.WithSeed(seed))
			}
			if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
				opts = append(opts, calculation.WithWorkers(workers))
			}

			runner, err := calculation.NewSimulationRunner(cfg, opts...)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			result, err := runner.Simulate(ctx)
			if err != nil {
				return fmt.Errorf("simulation failed: %w", err)
			}

			outputFile, _ := cmd.Flags().GetString("output")
			save, _ := cmd.Flags().GetBool("save")
			switch {
			case outputFile != "":
				if err := output.WriteToFile(f, result, outputFile); err != nil {
					return err
				}
				logger.Infof("wrote %s output to %s", f.Name(), outputFile)
			case save:
				filename, err := output.WriteFormatted(f, result, output.FileExtension(f))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s\n", filename)
			default:
				data, err := f.Format(result)
				if err != nil {
					return err
				}
				if _, err := cmd.OutOrStdout().Write(data); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", "console", "Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	cmd.Flags().Int64("seed", 0, "Base random seed (default: from the input file, else the clock)")
	cmd.Flags().Int("workers", 0, "Number of scenario workers (default: from the input file, else one per CPU)")
	cmd.Flags().StringP("output", "o", "", "Write the report to this file instead of stdout")
	cmd.Flags().Bool("save", false, "Write the report to a timestamped file in the working directory")
	return cmd
}

func newCalibrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Find the smallest monthly buy probability meeting a confidence target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			horizon, _ := cmd.Flags().GetInt("horizon")
			target, _ := cmd.Flags().GetFloat64("target")
			step, _ := cmd.Flags().GetFloat64("step")

			grid, err := calculation.ProbabilityGrid(step)
			if err != nil {
				return err
			}
			result, err := calculation.Calibrate(horizon, target, grid)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Buy probability:   %.4f\n", result.BuyProbability)
			fmt.Fprintf(out, "Rent probability:  %.4f\n", result.RentProbability)
			fmt.Fprintf(out, "P(at least one buy in %d months): %.4f\n", horizon, calculation.AtLeastOneBuy(result.BuyProbability, horizon))
			return nil
		},
	}

	defaults := config.DefaultConfiguration()
	cmd.Flags().Int("horizon", defaults.Simulation.HorizonMonths, "Horizon in months")
	cmd.Flags().Float64("target", defaults.Calibration.TargetConfidence, "Target probability of at least one buy decision")
	cmd.Flags().Float64("step", defaults.Calibration.ProbabilityGridStep, "Probability grid step")
	return cmd
}

func loadConfiguration(args []string) (*domain.SimulationConfig, error) {
	if len(args) == 0 {
		return config.DefaultConfiguration(), nil
	}
	return config.NewInputParser().LoadFromFile(args[0])
}
