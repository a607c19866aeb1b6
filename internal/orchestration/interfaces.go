package orchestration

import (
	"io"
	"math/big"
	"sync"
	"time"

	"github.com/agbru/numkit/internal/progress"
)

// CalculationResult is the outcome of one calculator run. Result is nil
// when Err is set.
type CalculationResult struct {
	Name     string
	Result   *big.Int
	Duration time.Duration
	Err      error
}

// PresentationOptions says how much of a result to print. ShowValue is
// false for --quiet runs.
type PresentationOptions struct {
	N         uint64
	Verbose   bool
	Details   bool
	ShowValue bool
}

// ProgressReporter consumes the progress channel of a run. It is started in
// its own goroutine, must return once progressChan is closed and calls
// wg.Done before returning.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer)
}

// NullProgressReporter discards every update.
type NullProgressReporter struct{}

func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter renders a comparison table and a single result.
type ResultPresenter interface {
	PresentComparisonTable(results []CalculationResult, out io.Writer)
	PresentResult(result CalculationResult, opts PresentationOptions, out io.Writer)
}

// ErrorHandler prints a failure and returns the exit code for it.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
