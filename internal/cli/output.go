package cli

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agbru/numkit/internal/ui"
)

// OutputConfig selects how a Fibonacci result is shown and whether it is
// also saved to OutputFile.
type OutputConfig struct {
	OutputFile string
	Quiet      bool // print the bare value only
	Verbose    bool // never truncate the value
	Details    bool
	ShowValue  bool
}

// WriteResultToFile saves result with a commented header describing the
// run. Missing parent directories are created. An empty OutputFile is a
// no-op.
func WriteResultToFile(result *big.Int, n uint64, duration time.Duration, algo string, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(config.OutputFile), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	digits := result.String()
	var b strings.Builder
	b.WriteString("# numkit Fibonacci result\n")
	fmt.Fprintf(&b, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&b, "# Algorithm: %s\n", algo)
	fmt.Fprintf(&b, "# Duration:  %s\n", duration)
	fmt.Fprintf(&b, "# N:         %d\n", n)
	fmt.Fprintf(&b, "# Bits:      %d\n", result.BitLen())
	fmt.Fprintf(&b, "# Digits:    %d\n\n", len(digits))
	fmt.Fprintf(&b, "F(%d) =\n%s\n", n, digits)

	if err := os.WriteFile(config.OutputFile, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	return nil
}

// FormatQuietResult returns the bare decimal value.
func FormatQuietResult(result *big.Int) string {
	return result.String()
}

// DisplayQuietResult prints the bare value on its own line.
func DisplayQuietResult(out io.Writer, result *big.Int) {
	fmt.Fprintln(out, FormatQuietResult(result))
}

// DisplayResultWithConfig prints result according to config and saves it
// when config.OutputFile is set. Only the file write can fail.
func DisplayResultWithConfig(out io.Writer, result *big.Int, n uint64, duration time.Duration, algo string, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, result)
	} else {
		DisplayResult(result, n, duration, config.Verbose, config.Details, config.ShowValue, out)
	}

	if config.OutputFile != "" {
		if err := WriteResultToFile(result, n, duration, algo, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}

	return nil
}
