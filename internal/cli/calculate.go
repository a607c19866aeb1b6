package cli

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/agbru/numkit/internal/fibonacci"
	"github.com/agbru/numkit/internal/ui"
)

// PrintExecutionHeader announces an interactive fib run: the index, the
// timeout, the runtime and whether one algorithm runs or all of them are
// compared.
func PrintExecutionHeader(n uint64, timeout time.Duration, calculators []fibonacci.Calculator, out io.Writer) {
	fmt.Fprintln(out, "--- Execution Configuration ---")
	fmt.Fprintf(out, "Calculating %sF(%d)%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), n, ui.ColorReset(), ui.ColorYellow(), timeout, ui.ColorReset())
	fmt.Fprintf(out, "Runtime: %s%d%s logical processors, Go %s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), runtime.Version())

	mode := "Parallel comparison of all algorithms"
	if len(calculators) == 1 {
		mode = fmt.Sprintf("Single calculation with the %s%s%s algorithm",
			ui.ColorGreen(), calculators[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n\n--- Starting Execution ---\n", mode)
}
