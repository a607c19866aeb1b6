package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/agbru/numkit/internal/cli"
	apperrors "github.com/agbru/numkit/internal/errors"
	"github.com/agbru/numkit/internal/fibonacci"
	"github.com/agbru/numkit/internal/logging"
	"github.com/agbru/numkit/internal/metrics"
	"github.com/agbru/numkit/internal/numeric"
	"github.com/agbru/numkit/internal/orchestration"
	"github.com/agbru/numkit/internal/ui"
)

// fibOptions holds the flags local to the fib command.
type fibOptions struct {
	u64        bool
	lastDigits int
	output     cli.OutputConfig
}

func (a *Application) newFibCommand() *cobra.Command {
	var opts fibOptions
	cmd := &cobra.Command{
		Use:     "fib N",
		Aliases: []string{"fibonacci"},
		Short:   "Compute the Nth Fibonacci number",
		Long: `Compute F(N). By default the arbitrary-precision engine runs the
algorithm selected by --algo, or every algorithm with --algo all, and
cross-checks the results. --u64 uses the checked 64-bit path, which fails
with an overflow error above F(93). --last-digits K prints F(N) mod 10^K.`,
		Example: "  numkit fib 100 -c\n  numkit fib 100000 --algo all\n  numkit fib 93 --u64\n  numkit fib 1000000000 --last-digits 12",
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseUint("n", args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch {
			case opts.u64:
				return a.runFib64(cmd, n)
			case cmd.Flags().Changed("last-digits"):
				if opts.lastDigits < 1 || opts.lastDigits > fibonacci.MaxLastDigits {
					return apperrors.NewConfigError("--last-digits must be between 1 and %d, got %d", fibonacci.MaxLastDigits, opts.lastDigits)
				}
				return a.runLastDigits(cmd.Context(), n, opts.lastDigits, out)
			default:
				opts.output.Quiet = a.Config.Quiet
				return a.runCalculate(cmd.Context(), n, opts.output, out)
			}
		},
	}

	f := cmd.Flags()
	f.StringVar(&a.Config.Algo, "algo", a.Config.Algo, fmt.Sprintf("Algorithm: %s or all", strings.Join(a.Factory.List(), ", ")))
	f.BoolVar(&opts.u64, "u64", false, "Use the checked 64-bit path (N <= 93)")
	f.IntVar(&opts.lastDigits, "last-digits", 0, fmt.Sprintf("Print only the last K decimal digits (K <= %d)", fibonacci.MaxLastDigits))
	f.BoolVar(&opts.output.Details, "details", false, "Show digit count, memory and CPU details")
	f.BoolVarP(&opts.output.ShowValue, "show-value", "c", false, "Print the computed value")
	f.BoolVarP(&opts.output.Verbose, "verbose", "v", false, "Print the full value instead of a truncated one")
	f.StringVarP(&opts.output.OutputFile, "output", "o", "", "Save the result to a file")
	return cmd
}

func (a *Application) runFib64(cmd *cobra.Command, n uint64) error {
	v, err := numeric.Fibonacci(n)
	if err != nil {
		return err
	}
	return a.writeValue(cmd, "fibonacci", v)
}

// runLastDigits computes only the last k decimal digits of F(n) using
// modular arithmetic, requiring O(k) memory regardless of n.
func (a *Application) runLastDigits(ctx context.Context, n uint64, k int, out io.Writer) error {
	if !a.Config.Quiet && a.Config.Format == cli.OutputText {
		fmt.Fprintf(out, "Computing last %d digits of F(%d)...\n", k, n)
	}

	start := time.Now()
	result, err := fibonacci.LastDigits(n, k)
	elapsed := time.Since(start)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	digits := fmt.Sprintf("%0*d", k, result)
	a.Logger.Debug("last digits computed",
		logging.Uint64("n", n), logging.Int("k", k), logging.Duration("elapsed", elapsed))

	if a.Config.Quiet || a.Config.Format != cli.OutputText {
		return cli.WriteValue(out, a.Config.Format, "fibonacci_last_digits", digits)
	}
	fmt.Fprintf(out, "Last %d digits of F(%d): %s%s%s\n", k, n, ui.ColorGreen(), digits, ui.ColorReset())
	fmt.Fprintf(out, "Computed in %s\n", elapsed.Round(time.Millisecond))
	return nil
}

// runCalculate orchestrates the execution of the arbitrary-precision
// calculators selected by the configuration.
func (a *Application) runCalculate(ctx context.Context, n uint64, outputCfg cli.OutputConfig, out io.Writer) error {
	calculatorsToRun, err := orchestration.GetCalculatorsToRun(a.Config.Algo, a.Factory)
	if err != nil {
		return err
	}

	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	textMode := a.Config.Format == cli.OutputText
	interactive := textMode && !outputCfg.Quiet
	if interactive {
		cli.PrintExecutionHeader(n, a.Config.Timeout, calculatorsToRun, out)
	}

	var progressReporter orchestration.ProgressReporter = orchestration.NullProgressReporter{}
	progressOut := io.Discard
	if interactive {
		progressReporter = cli.CLIProgressReporter{}
		progressOut = out
	}

	before := metrics.ReadMemory()
	results := orchestration.ExecuteCalculations(ctx, calculatorsToRun, n, progressReporter, progressOut)
	memDelta := metrics.ReadMemory().Since(before)

	best := findBestResult(results)
	if best != nil {
		a.Logger.Debug("calculation finished",
			logging.Uint64("n", n),
			logging.String("algorithm", best.Name),
			logging.Duration("duration", best.Duration),
			logging.Int("calculators", len(results)),
		)
	}

	if !interactive {
		return a.reportBare(results, best, n, outputCfg, out)
	}

	presOpts := orchestration.PresentationOptions{
		N:         n,
		Verbose:   outputCfg.Verbose,
		Details:   outputCfg.Details,
		ShowValue: outputCfg.ShowValue,
	}
	presenter := cli.CLIResultPresenter{}
	if code := orchestration.AnalyzeComparisonResults(results, presOpts, presenter, presenter, out); code != apperrors.ExitSuccess {
		return exitError{code: code}
	}
	// AnalyzeComparisonResults reorders results.
	best = findBestResult(results)

	if outputCfg.OutputFile != "" {
		if err := cli.WriteResultToFile(best.Result, n, best.Duration, best.Name, outputCfg); err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), outputCfg.OutputFile, ui.ColorReset())
	}
	if outputCfg.Details {
		cli.DisplayMemoryStats(memDelta, out)
		cli.DisplayEnvironment(metrics.DetectCPU(), metrics.SampleSystem(), out)
	}
	return nil
}

// reportBare prints the fastest result as a bare value (quiet mode) or as
// structured output. Disagreeing results are not compared here.
func (a *Application) reportBare(results []orchestration.CalculationResult, best *orchestration.CalculationResult, n uint64, outputCfg cli.OutputConfig, out io.Writer) error {
	if best == nil {
		code := cli.CLIResultPresenter{}.HandleError(firstError(results), 0, a.ErrWriter)
		return exitError{code: code}
	}
	if a.Config.Format != cli.OutputText {
		if err := cli.WriteValue(out, a.Config.Format, "fibonacci", best.Result); err != nil {
			return err
		}
		return cli.WriteResultToFile(best.Result, n, best.Duration, best.Name, outputCfg)
	}
	return cli.DisplayResultWithConfig(out, best.Result, n, best.Duration, best.Name, outputCfg)
}

func findBestResult(results []orchestration.CalculationResult) *orchestration.CalculationResult {
	var bestResult *orchestration.CalculationResult
	for i := range results {
		if results[i].Err == nil {
			if bestResult == nil || results[i].Duration < bestResult.Duration {
				bestResult = &results[i]
			}
		}
	}
	return bestResult
}

func firstError(results []orchestration.CalculationResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
