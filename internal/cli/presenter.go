package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	apperrors "github.com/agbru/numkit/internal/errors"
	"github.com/agbru/numkit/internal/format"
	"github.com/agbru/numkit/internal/metrics"
	"github.com/agbru/numkit/internal/orchestration"
	"github.com/agbru/numkit/internal/progress"
	"github.com/agbru/numkit/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with the
// spinner of DisplayProgress.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress implements orchestration.ProgressReporter.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer) {
	DisplayProgress(wg, progressChan, numCalculators, out)
}

// CLIColorProvider supplies the active theme's colors to apperrors.
type CLIColorProvider struct{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// CLIResultPresenter renders results as colored text.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
)

// PresentComparisonTable prints one row per algorithm. Padding is computed
// on the plain text so ANSI codes do not break the alignment.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.CalculationResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	maxNameLen := len("Algorithm")
	maxDurationLen := len("Duration")
	durations := make([]string, len(results))
	for i, res := range results {
		maxNameLen = max(maxNameLen, len(res.Name))
		durations[i] = tableDuration(res.Duration)
		maxDurationLen = max(maxDurationLen, len([]rune(durations[i])))
	}

	fmt.Fprintf(out, "%sAlgorithm%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-len("Algorithm")),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxDurationLen-len("Duration")),
		ui.ColorUnderline(), ui.ColorReset())

	for i, res := range results {
		status := fmt.Sprintf("%sSuccess%s", ui.ColorGreen(), ui.ColorReset())
		if res.Err != nil {
			status = fmt.Sprintf("%sFailure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		}
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), padRight("", maxNameLen-len(res.Name)),
			ui.ColorYellow(), durations[i], ui.ColorReset(), padRight("", maxDurationLen-len([]rune(durations[i]))),
			status)
	}
}

func tableDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// padRight appends length spaces to s.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResult implements orchestration.ResultPresenter.
func (CLIResultPresenter) PresentResult(result orchestration.CalculationResult, opts orchestration.PresentationOptions, out io.Writer) {
	DisplayResult(result.Result, opts.N, result.Duration, opts.Verbose, opts.Details, opts.ShowValue, out)
}

// HandleError implements orchestration.ErrorHandler.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, CLIColorProvider{})
}

// DisplayMemoryStats prints the memory activity of a calculation.
func DisplayMemoryStats(delta metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(delta.HeapAlloc))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(delta.TotalAlloc))
	fmt.Fprintf(out, "  GC cycles:       %d\n", delta.NumGC)
	fmt.Fprintf(out, "  GC pause total:  %s\n", format.FormatExecutionDuration(delta.GCPause))
}

// DisplayEnvironment prints the processor description and the current
// system-wide load.
func DisplayEnvironment(info metrics.CPUInfo, usage metrics.SystemUsage, out io.Writer) {
	fmt.Fprintf(out, "Environment: %s%s%s\n", ui.ColorCyan(), info, ui.ColorReset())
	fmt.Fprintf(out, "System load: %s%s%s\n", ui.ColorCyan(), usage, ui.ColorReset())
}
