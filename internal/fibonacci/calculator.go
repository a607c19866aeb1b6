package fibonacci

import (
	"context"
	"math/big"
	"strconv"

	"go.opentelemetry.io/otel/attribute"

	"github.com/agbru/numkit/internal/numeric"
	"github.com/agbru/numkit/internal/progress"
	"github.com/agbru/numkit/internal/telemetry"
)

// Calculator computes arbitrary-precision Fibonacci numbers. It is the
// interface consumed by the orchestration and presentation layers.
type Calculator interface {
	// Calculate computes F(n), sending progress updates tagged with index
	// to progressChan. A nil progressChan disables progress reporting.
	// It returns ctx.Err() when the context is canceled or times out.
	Calculate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, index int, n uint64) (*big.Int, error)

	// Name returns a human-readable description of the algorithm.
	Name() string
}

// coreCalculator is implemented by each algorithm. FibCalculator adds the
// shared behavior (small-n fast path, tracing, final progress) around it.
type coreCalculator interface {
	CalculateCore(ctx context.Context, reporter progress.ProgressCallback, n uint64) (*big.Int, error)
	Name() string
}

// FibCalculator decorates a coreCalculator with the behavior every algorithm
// shares.
type FibCalculator struct {
	core coreCalculator
}

// NewCalculator wraps core in a FibCalculator.
func NewCalculator(core coreCalculator) Calculator {
	return &FibCalculator{core: core}
}

// Name returns the name of the wrapped algorithm.
func (c *FibCalculator) Name() string {
	return c.core.Name()
}

// Calculate implements Calculator.
func (c *FibCalculator) Calculate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, index int, n uint64) (*big.Int, error) {
	return c.CalculateWithReporter(ctx, progress.ChannelReporter(progressChan, index), n)
}

// CalculateWithReporter computes F(n) and reports progress through reporter.
// Values that fit a uint64 come from numeric.Fibonacci without running the
// algorithm.
func (c *FibCalculator) CalculateWithReporter(ctx context.Context, reporter progress.ProgressCallback, n uint64) (result *big.Int, err error) {
	if reporter == nil {
		reporter = progress.NoOp
	}
	ctx, span := telemetry.StartSpan(ctx, "fibonacci.calculate",
		attribute.String("fibonacci.algorithm", c.core.Name()),
		attribute.String("fibonacci.n", strconv.FormatUint(n, 10)),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	if n <= numeric.MaxFibonacciIndex {
		v, _ := numeric.Fibonacci(n)
		reporter(1.0)
		return new(big.Int).SetUint64(v), nil
	}

	result, err = c.core.CalculateCore(ctx, reporter, n)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("fibonacci.result_bits", result.BitLen()))
	reporter(1.0)
	return result, nil
}
