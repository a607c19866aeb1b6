//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"math/big"
	"strconv"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/numkit/internal/format"
	"github.com/agbru/numkit/internal/orchestration"
	"github.com/agbru/numkit/internal/progress"
	"github.com/agbru/numkit/internal/ui"
)

const (
	// TruncationLimit is the digit count above which a result is truncated
	// in standard output.
	TruncationLimit = 100
	// DisplayEdges is the number of digits shown at each end of a truncated
	// number.
	DisplayEdges = 25
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts the terminal spinner so DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts *spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner with an aggregated progress bar and ETA
// until progressChan is closed. It calls wg.Done when it returns.
//
// Parameters:
//   - wg: The WaitGroup to signal when display is complete.
//   - progressChan: The channel receiving progress updates.
//   - numCalculators: The number of calculators feeding the channel.
//   - out: The writer for the spinner.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numCalculators)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	label := "Calculating"
	if agg.IsMultiCalculator() {
		label = fmt.Sprintf("Comparing %d algorithms", agg.NumCalculators())
	}
	render := func(avg float64, eta time.Duration) {
		s.UpdateSuffix(fmt.Sprintf(" %s %s", label, format.FormatProgressBarWithETA(avg, eta, ProgressBarWidth)))
	}
	render(0, 0)
	s.Start()
	defer s.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()
	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				render(agg.CalculateAverage(), 0)
				return
			}
			ap := agg.Update(update)
			render(ap.AverageProgress, ap.ETA)
		case <-ticker.C:
			render(agg.CalculateAverage(), agg.GetETA())
		}
	}
}

// DisplayResult prints a Fibonacci result: its size, optionally a detailed
// analysis and optionally the value itself, truncated unless verbose.
//
// Parameters:
//   - result: The calculated value.
//   - n: The index of the result.
//   - duration: The calculation time, shown with details.
//   - verbose: Print the full value even when it is long.
//   - details: Print the digit count, the calculation time and the scientific notation.
//   - showValue: Print the value.
//   - out: The output writer.
func DisplayResult(result *big.Int, n uint64, duration time.Duration, verbose, details, showValue bool, out io.Writer) {
	digits := result.String()
	fmt.Fprintf(out, "Result binary size: %s%s%s bits.\n",
		ui.ColorCyan(), format.FormatNumberString(strconv.Itoa(result.BitLen())), ui.ColorReset())

	if details {
		fmt.Fprintf(out, "\n--- Detailed result analysis ---\n")
		fmt.Fprintf(out, "Calculation time        : %s%s%s\n", ui.ColorYellow(), format.FormatExecutionDuration(duration), ui.ColorReset())
		fmt.Fprintf(out, "Number of digits        : %s%s%s\n", ui.ColorCyan(), format.FormatNumberString(strconv.Itoa(len(digits))), ui.ColorReset())
		if len(digits) > 6 {
			fmt.Fprintf(out, "Scientific notation     : %s%s.%se+%d%s\n",
				ui.ColorCyan(), digits[:1], digits[1:6], len(digits)-1, ui.ColorReset())
		}
	}

	if !showValue {
		return
	}
	fmt.Fprintf(out, "\n--- Calculated value ---\n")
	if verbose || len(digits) <= TruncationLimit {
		fmt.Fprintf(out, "F(%s%d%s) =\n%s%s%s\n", ui.ColorMagenta(), n, ui.ColorReset(),
			ui.ColorGreen(), format.FormatNumberString(digits), ui.ColorReset())
		return
	}
	fmt.Fprintf(out, "F(%s%d%s) (truncated) = %s%s%s\n", ui.ColorMagenta(), n, ui.ColorReset(),
		ui.ColorGreen(), format.TruncateDigits(digits, DisplayEdges), ui.ColorReset())
	fmt.Fprintf(out, "(Tip: use %s--verbose%s to display the full value)\n", ui.ColorYellow(), ui.ColorReset())
}
