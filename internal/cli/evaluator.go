package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"
	"sync"
	"time"

	apperrors "github.com/agbru/numkit/internal/errors"
	"github.com/agbru/numkit/internal/fibonacci"
	"github.com/agbru/numkit/internal/format"
	"github.com/agbru/numkit/internal/numeric"
	"github.com/agbru/numkit/internal/orchestration"
)

// ErrExit is returned by Evaluator.Eval for the exit and quit commands.
var ErrExit = errors.New("exit requested")

// HelpText describes the commands understood by Evaluator.
const HelpText = `Available commands:
  sum <a> <b>                 Sum of two integers
  nonempty [text...]          Whether the text is non-empty
  sortsum <n>...              Sort the numbers and sum them
  fib <n>                     F(n) with the current algorithm (or just <n>)
  fib64 <n>                   F(n) on the checked 64-bit path (n <= 93)
  algo [name]                 Show or change the algorithm
  list                        List available algorithms
  compare <n>                 Compare all algorithms for F(n)
  dist <x1> <y1> <x2> <y2>    Euclidean distance between two points
  area <width> <height>       Rectangle area
  person <name> <age> <email> Build a person record
  hex                         Toggle hexadecimal display of F(n)
  status                      Display current configuration
  help                        Display this help
  exit / quit                 Exit interactive mode`

// Evaluator executes one command line at a time. It is shared by the REPL
// and the TUI and produces plain, uncolored text.
type Evaluator struct {
	factory fibonacci.CalculatorFactory
	timeout time.Duration

	mu   sync.Mutex
	algo string
	hex  bool
}

// NewEvaluator creates an Evaluator computing big Fibonacci numbers with
// the named algorithm. An empty name or "all" selects the first algorithm
// of the factory.
//
// Parameters:
//   - factory: The calculator factory.
//   - algo: The initial algorithm name.
//   - timeout: The limit applied to each command.
//
// Returns:
//   - *Evaluator: The evaluator.
func NewEvaluator(factory fibonacci.CalculatorFactory, algo string, timeout time.Duration) *Evaluator {
	if algo == "" || algo == orchestration.AllAlgorithms {
		if names := factory.List(); len(names) > 0 {
			algo = names[0]
		}
	}
	return &Evaluator{factory: factory, timeout: timeout, algo: algo}
}

// Algo returns the current algorithm name.
func (e *Evaluator) Algo() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.algo
}

// Eval runs a single command line and returns its output. Blank lines
// produce no output. Input errors are ValidationErrors; ErrExit ends the
// session.
func (e *Evaluator) Eval(ctx context.Context, line string) (string, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return "", nil
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	switch cmd {
	case "sum", "add":
		return e.evalSum(args)
	case "nonempty":
		return strconv.FormatBool(numeric.IsNonEmpty(strings.Join(args, " "))), nil
	case "sortsum":
		return e.evalSortSum(args)
	case "fib", "calc", "c":
		if err := wantArgs(cmd, args, 1, "<n>"); err != nil {
			return "", err
		}
		n, err := parseIndex(args[0])
		if err != nil {
			return "", err
		}
		return e.fib(ctx, n)
	case "fib64":
		return e.evalFib64(args)
	case "algo", "a":
		return e.evalAlgo(args)
	case "list", "ls":
		return e.list(), nil
	case "compare", "cmp":
		if err := wantArgs(cmd, args, 1, "<n>"); err != nil {
			return "", err
		}
		n, err := parseIndex(args[0])
		if err != nil {
			return "", err
		}
		return e.compare(ctx, n)
	case "dist", "distance":
		return e.evalDistance(args)
	case "area":
		return e.evalArea(args)
	case "person":
		return e.evalPerson(args)
	case "hex":
		e.mu.Lock()
		e.hex = !e.hex
		enabled := e.hex
		e.mu.Unlock()
		if enabled {
			return "Hexadecimal display: enabled", nil
		}
		return "Hexadecimal display: disabled", nil
	case "status", "st":
		return e.status(), nil
	case "help", "h", "?":
		return HelpText, nil
	case "exit", "quit", "q":
		return "", ErrExit
	}

	// A bare index is shorthand for fib.
	if n, err := strconv.ParseUint(cmd, 10, 64); err == nil && len(args) == 0 {
		return e.fib(ctx, n)
	}
	return "", apperrors.ValidationError{Field: "command", Message: fmt.Sprintf("unknown command %q (type help)", cmd)}
}

func wantArgs(cmd string, args []string, n int, usage string) error {
	if len(args) != n {
		return apperrors.ValidationError{Field: cmd, Message: fmt.Sprintf("usage: %s %s", cmd, usage)}
	}
	return nil
}

func parseIndex(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, apperrors.ValidationError{Field: "n", Message: fmt.Sprintf("invalid index %q", s)}
	}
	return n, nil
}

func parseInt(field, s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, apperrors.ValidationError{Field: field, Message: fmt.Sprintf("invalid integer %q", s)}
	}
	return v, nil
}

func parseFloat(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, apperrors.ValidationError{Field: field, Message: fmt.Sprintf("invalid number %q", s)}
	}
	return v, nil
}

func (e *Evaluator) evalSum(args []string) (string, error) {
	if err := wantArgs("sum", args, 2, "<a> <b>"); err != nil {
		return "", err
	}
	a, err := parseInt("a", args[0])
	if err != nil {
		return "", err
	}
	b, err := parseInt("b", args[1])
	if err != nil {
		return "", err
	}
	s, err := numeric.Sum(a, b)
	if err != nil {
		return "", err
	}
	return FormatValue(s), nil
}

func (e *Evaluator) evalSortSum(args []string) (string, error) {
	numbers := make([]int64, len(args))
	for i, arg := range args {
		v, err := parseInt("numbers", arg)
		if err != nil {
			return "", err
		}
		numbers[i] = v
	}
	s, err := numeric.SortAndSum(numbers)
	if err != nil {
		return "", err
	}
	return FormatValue(s), nil
}

func (e *Evaluator) evalFib64(args []string) (string, error) {
	if err := wantArgs("fib64", args, 1, "<n>"); err != nil {
		return "", err
	}
	n, err := parseIndex(args[0])
	if err != nil {
		return "", err
	}
	v, err := numeric.Fibonacci(n)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("F(%d) = %d", n, v), nil
}

func (e *Evaluator) evalDistance(args []string) (string, error) {
	if err := wantArgs("dist", args, 4, "<x1> <y1> <x2> <y2>"); err != nil {
		return "", err
	}
	var coords [4]float64
	for i, name := range []string{"x1", "y1", "x2", "y2"} {
		v, err := parseFloat(name, args[i])
		if err != nil {
			return "", err
		}
		coords[i] = v
	}
	d := numeric.Distance(numeric.Point2D{X: coords[0], Y: coords[1]}, numeric.Point2D{X: coords[2], Y: coords[3]})
	return FormatValue(d), nil
}

func (e *Evaluator) evalArea(args []string) (string, error) {
	if err := wantArgs("area", args, 2, "<width> <height>"); err != nil {
		return "", err
	}
	w, err := parseFloat("width", args[0])
	if err != nil {
		return "", err
	}
	h, err := parseFloat("height", args[1])
	if err != nil {
		return "", err
	}
	return FormatValue(numeric.Area(w, h)), nil
}

func (e *Evaluator) evalPerson(args []string) (string, error) {
	if err := wantArgs("person", args, 3, "<name> <age> <email>"); err != nil {
		return "", err
	}
	age, err := strconv.Atoi(args[1])
	if err != nil {
		return "", apperrors.ValidationError{Field: "age", Message: fmt.Sprintf("invalid integer %q", args[1])}
	}
	return FormatValue(numeric.MakePerson(args[0], age, args[2])), nil
}

func (e *Evaluator) evalAlgo(args []string) (string, error) {
	if len(args) == 0 {
		return fmt.Sprintf("Current algorithm: %s\nAvailable algorithms: %s",
			e.Algo(), strings.Join(e.factory.List(), ", ")), nil
	}
	name := strings.ToLower(args[0])
	calc, err := e.factory.Get(name)
	if err != nil {
		return "", err
	}
	e.mu.Lock()
	e.algo = name
	e.mu.Unlock()
	return fmt.Sprintf("Algorithm changed to: %s", calc.Name()), nil
}

func (e *Evaluator) list() string {
	current := e.Algo()
	var b strings.Builder
	b.WriteString("Available algorithms:")
	for _, name := range e.factory.List() {
		calc, err := e.factory.Get(name)
		if err != nil {
			continue
		}
		marker := "  "
		if name == current {
			marker = "* "
		}
		fmt.Fprintf(&b, "\n%s%-10s - %s", marker, name, calc.Name())
	}
	return b.String()
}

func (e *Evaluator) status() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	hex := "no"
	if e.hex {
		hex = "yes"
	}
	return fmt.Sprintf("Algorithm:   %s\nTimeout:     %s\nHexadecimal: %s", e.algo, e.timeout, hex)
}

// fib computes F(n) with the current algorithm.
func (e *Evaluator) fib(ctx context.Context, n uint64) (string, error) {
	e.mu.Lock()
	algo, hex := e.algo, e.hex
	e.mu.Unlock()

	calc, err := e.factory.Get(algo)
	if err != nil {
		return "", err
	}
	start := time.Now()
	result, err := calc.Calculate(ctx, nil, 0, n)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", apperrors.TimeoutError{Operation: "fib", Limit: e.timeout}
		}
		return "", err
	}
	return fmt.Sprintf("F(%d) = %s\n%s, %d digits, %s",
		n, renderBig(result, hex), calc.Name(), len(result.String()),
		format.FormatExecutionDuration(time.Since(start))), nil
}

// renderBig prints a value in decimal or hexadecimal, truncating long
// decimal values.
func renderBig(v *big.Int, hex bool) string {
	if hex {
		return "0x" + v.Text(16)
	}
	digits := v.String()
	if len(digits) > TruncationLimit {
		return format.TruncateDigits(digits, DisplayEdges) + " (truncated)"
	}
	return digits
}

// compare runs every algorithm for F(n) concurrently and checks that they
// agree.
func (e *Evaluator) compare(ctx context.Context, n uint64) (string, error) {
	calculators, err := orchestration.GetCalculatorsToRun(orchestration.AllAlgorithms, e.factory)
	if err != nil {
		return "", err
	}
	results := orchestration.ExecuteCalculations(ctx, calculators, n, orchestration.NullProgressReporter{}, io.Discard)

	var b strings.Builder
	fmt.Fprintf(&b, "Comparison for F(%d):", n)
	var first *big.Int
	consistent := true
	succeeded := 0
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(&b, "\n  %-36s error: %v", res.Name, res.Err)
			continue
		}
		succeeded++
		status := "ok"
		if first == nil {
			first = res.Result
		} else if res.Result.Cmp(first) != 0 {
			status = "MISMATCH"
			consistent = false
		}
		fmt.Fprintf(&b, "\n  %-36s %10s  %s", res.Name, format.FormatExecutionDuration(res.Duration), status)
	}
	switch {
	case succeeded == 0:
		return b.String(), results[0].Err
	case !consistent:
		return b.String(), apperrors.CalculationError{Cause: fmt.Errorf("algorithms disagree on F(%d)", n)}
	}
	fmt.Fprintf(&b, "\nAll %d successful algorithms agree.", succeeded)
	return b.String(), nil
}
