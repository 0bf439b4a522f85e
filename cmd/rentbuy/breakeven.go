package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/rgehrsitz/rentbuy/internal/breakeven"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newBreakEvenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "break-even [input-file]",
		Short: "Find the purchase price or rent at which buying matches renting",
		Long: `Bisects one household input until the median return of buying over renting
crosses zero. The price target runs every scenario at the probed price and
reports the highest price at which buying still matches renting; the rent
target reports the lowest rent at which it does.

Examples:
  rentbuy break-even household.yaml
  rentbuy break-even household.yaml --target price --min 400000 --max 900000
  rentbuy break-even --target rent --tolerance 5 --format json`,
		Aliases: []string{"breakeven"},
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			if format != "table" && format != "json" {
				return fmt.Errorf("unknown output format %q (valid: table, json)", format)
			}

			cfg, err := loadConfiguration(args)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				seed, _ := cmd.Flags().GetInt64("seed")
				cfg.Simulation.Seed = &seed
			}

			options := breakeven.DefaultSolverOptions()
			if n, _ := cmd.Flags().GetInt("max-iterations"); n > 0 {
				options.MaxIterations = n
			}
			solver := breakeven.NewSolver(options)
			solver.Logger = newLogger(cmd)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			targetName, _ := cmd.Flags().GetString("target")
			var results []breakeven.Result
			if targetName == "all" {
				results, err = solver.SolveAll(ctx, cfg)
				if err != nil {
					return err
				}
			} else {
				target, err := breakeven.ParseTarget(targetName)
				if err != nil {
					return err
				}
				req := breakeven.Request{Config: cfg, Target: target}
				req.Lower, req.Upper = breakeven.DefaultBounds(cfg, target)
				if req.Lower, err = decimalFlag(cmd, "min", req.Lower); err != nil {
					return err
				}
				if req.Upper, err = decimalFlag(cmd, "max", req.Upper); err != nil {
					return err
				}
				if req.Tolerance, err = decimalFlag(cmd, "tolerance", decimal.Zero); err != nil {
					return err
				}
				res, err := solver.Solve(ctx, req)
				if err != nil {
					return err
				}
				results = []breakeven.Result{*res}
			}

			out := cmd.OutOrStdout()
			if format == "json" {
				data, err := (&breakeven.JSONFormatter{}).Format(results)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}
			_, err = fmt.Fprint(out, (&breakeven.TableFormatter{}).Format(results))
			return err
		},
	}

	cmd.Flags().String("target", "all", "What to solve for (price, rent, all)")
	cmd.Flags().String("min", "", "Lower bound of the search (default: price_min, or zero rent)")
	cmd.Flags().String("max", "", "Upper bound of the search (default: price_max, or three times the rent)")
	cmd.Flags().String("tolerance", "", "Stop when the bracket is this narrow (default: $1,000 price, $10 rent)")
	cmd.Flags().Int("max-iterations", 0, "Maximum bisection steps (default 30)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	cmd.Flags().Int64("seed", 0, "Seed shared by every probe (default: from the input file, else the clock)")
	return cmd
}

// decimalFlag parses a decimal string flag, returning def when it is unset
func decimalFlag(cmd *cobra.Command, name string, def decimal.Decimal) (decimal.Decimal, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return def, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q: %w", name, raw, err)
	}
	return v, nil
}
