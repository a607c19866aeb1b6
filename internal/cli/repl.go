package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/agbru/numkit/internal/ui"
)

// Prompt is printed before each REPL input line.
const Prompt = "numkit> "

// REPL is an interactive session reading commands line by line and
// evaluating them with an Evaluator.
type REPL struct {
	eval *Evaluator
	in   io.Reader
	out  io.Writer
}

// NewREPL creates a REPL bound to standard input and output.
func NewREPL(eval *Evaluator) *REPL {
	return &REPL{eval: eval, in: os.Stdin, out: os.Stdout}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start runs the session until exit, EOF or ctx cancellation. Command
// errors are printed and the session continues.
func (r *REPL) Start(ctx context.Context) error {
	r.printBanner()
	fmt.Fprintln(r.out, HelpText)
	fmt.Fprintln(r.out)

	scanner := bufio.NewScanner(r.in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(r.out, ui.ColorGreen()+Prompt+ui.ColorReset())
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			fmt.Fprintln(r.out, "\nGoodbye!")
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		output, err := r.eval.Eval(ctx, line)
		if output != "" {
			fmt.Fprintln(r.out, output)
		}
		switch {
		case errors.Is(err, ErrExit):
			fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
			return nil
		case err != nil:
			fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "%s╔══════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s   %snumkit - Interactive Mode%s              %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}
