package fibonacci

import (
	"context"
	"math/big"

	"github.com/agbru/numkit/internal/progress"
)

// IterativeAddition computes F(n) with n big-integer additions. It is the
// direct bottom-up evaluation of the recurrence and serves as a reference.
type IterativeAddition struct{}

// Name returns the algorithm description.
func (*IterativeAddition) Name() string {
	return "Iterative Addition (O(n))"
}

// CalculateCore implements coreCalculator.
func (*IterativeAddition) CalculateCore(ctx context.Context, reporter progress.ProgressCallback, n uint64) (*big.Int, error) {
	a := big.NewInt(0) // F(i)
	b := big.NewInt(1) // F(i+1)
	var last float64

	for i := uint64(0); i < n; i++ {
		if i%cancellationCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			reportFraction(reporter, &last, i, n)
		}
		a.Add(a, b)
		a, b = b, a
	}
	return a, nil
}

// reportFraction reports i/n for loops whose count does not fit an int.
func reportFraction(reporter progress.ProgressCallback, last *float64, i, n uint64) {
	const steps = 1000
	progress.ReportStepProgress(reporter, last, int(i*steps/n), steps)
}
