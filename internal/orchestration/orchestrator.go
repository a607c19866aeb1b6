package orchestration

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/numkit/internal/errors"
	"github.com/agbru/numkit/internal/fibonacci"
	"github.com/agbru/numkit/internal/progress"
)

// ProgressBufferMultiplier sizes the progress channel per calculator so a
// slow reporter rarely blocks a calculation.
const ProgressBufferMultiplier = 5

// ExecuteCalculations computes F(n) with every calculator concurrently and
// returns one result per calculator, in input order. A failure is recorded
// in its result and never cancels the other runs. The progress channel is
// closed once all calculators returned, and the call waits until the
// reporter has drained it.
func ExecuteCalculations(ctx context.Context, calculators []fibonacci.Calculator, n uint64, reporter ProgressReporter, out io.Writer) []CalculationResult {
	results := make([]CalculationResult, len(calculators))
	updates := make(chan progress.ProgressUpdate, len(calculators)*ProgressBufferMultiplier)

	var display sync.WaitGroup
	display.Add(1)
	go reporter.DisplayProgress(&display, updates, len(calculators), out)

	var g errgroup.Group
	for i, calc := range calculators {
		g.Go(func() error {
			start := time.Now()
			value, err := calc.Calculate(ctx, updates, i, n)
			results[i] = CalculationResult{Name: calc.Name(), Result: value, Duration: time.Since(start), Err: err}
			return nil
		})
	}
	_ = g.Wait()

	close(updates)
	display.Wait()
	return results
}

// byOutcome orders successes before failures, then by duration.
func byOutcome(a, b CalculationResult) int {
	if (a.Err == nil) != (b.Err == nil) {
		if a.Err == nil {
			return -1
		}
		return 1
	}
	return cmp.Compare(a.Duration, b.Duration)
}

// AnalyzeComparisonResults sorts results in place with the fastest success
// first, presents the comparison table and checks that all successful
// results agree. It presents the fastest result and returns ExitSuccess,
// ExitErrorMismatch on disagreement, or the code errHandler assigns when
// every calculator failed.
func AnalyzeComparisonResults(results []CalculationResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	slices.SortStableFunc(results, byOutcome)
	presenter.PresentComparisonTable(results, out)

	if len(results) == 0 || results[0].Err != nil {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No algorithm could complete the calculation.\n")
		var err error
		if len(results) > 0 {
			err = results[0].Err
		}
		return errHandler.HandleError(err, 0, out)
	}

	best := results[0]
	for _, r := range results[1:] {
		if r.Err == nil && r.Result.Cmp(best.Result) != 0 {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! An inconsistency was detected between the results of the algorithms.\n")
			return apperrors.ExitErrorMismatch
		}
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	presenter.PresentResult(best, opts, out)
	return apperrors.ExitSuccess
}
