package orchestration

import (
	"context"
	"errors"
	"io"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agbru/numkit/internal/fibonacci"
	"github.com/agbru/numkit/internal/progress"
)

func instant(context.Context, progress.ProgressCallback) (*big.Int, error) {
	return big.NewInt(1), nil
}

func failing(context.Context, progress.ProgressCallback) (*big.Int, error) {
	return nil, errors.New("simulated error")
}

// flooding reports far more updates than the progress buffer holds.
func flooding(_ context.Context, report progress.ProgressCallback) (*big.Int, error) {
	for i := range 10_000 {
		report(float64(i) / 10_000)
	}
	return big.NewInt(1), nil
}

// sleeping reports progress until it finishes or ctx ends.
func sleeping(step time.Duration) func(context.Context, progress.ProgressCallback) (*big.Int, error) {
	return func(ctx context.Context, report progress.ProgressCallback) (*big.Int, error) {
		for i := range 100 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(step):
			}
			report(float64(i+1) / 100)
		}
		return big.NewInt(1), nil
	}
}

// finishes fails the test if ExecuteCalculations does not return in time.
func finishes(t *testing.T, ctx context.Context, calcs []fibonacci.Calculator, limit time.Duration) []CalculationResult {
	t.Helper()
	done := make(chan []CalculationResult, 1)
	go func() {
		done <- ExecuteCalculations(ctx, calcs, 100, NullProgressReporter{}, io.Discard)
	}()
	select {
	case results := <-done:
		return results
	case <-time.After(limit):
		t.Fatal("ExecuteCalculations did not return: deadlock")
		return nil
	}
}

func TestExecuteCalculations_NoDeadlock(t *testing.T) {
	tests := map[string][]fibonacci.Calculator{
		"single":        {calcFunc("solo", instant)},
		"all instant":   {calcFunc("a", instant), calcFunc("b", instant), calcFunc("c", instant)},
		"instant, slow": {calcFunc("fast", instant), calcFunc("slow", sleeping(time.Millisecond))},
		"with errors":   {calcFunc("ok", instant), calcFunc("err", failing)},
		"flood":         {calcFunc("f1", flooding), calcFunc("f2", flooding)},
	}
	for name, calcs := range tests {
		t.Run(name, func(t *testing.T) {
			results := finishes(t, context.Background(), calcs, 10*time.Second)
			assert.Len(t, results, len(calcs))
		})
	}
}

func TestExecuteCalculations_NoDeadlockOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calcs := []fibonacci.Calculator{
		calcFunc("slow1", sleeping(100*time.Millisecond)),
		calcFunc("slow2", sleeping(100*time.Millisecond)),
	}
	time.AfterFunc(50*time.Millisecond, cancel)

	for _, r := range finishes(t, ctx, calcs, 5*time.Second) {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}
