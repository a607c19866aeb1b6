package fibonacci

import (
	"context"
	"fmt"
	"math/big"

	apperrors "github.com/agbru/numkit/internal/errors"
	"github.com/agbru/numkit/internal/progress"
)

// MemoizedRecursion evaluates F(n) = F(n-1) + F(n-2) top-down, exactly as the
// recurrence is written, with a memo that turns the exponential call tree
// into a linear chain. Entries no longer needed are released as the
// recursion unwinds, so memory stays proportional to the size of F(n).
type MemoizedRecursion struct{}

// Name returns the algorithm description.
func (*MemoizedRecursion) Name() string {
	return "Memoized Recursion (O(n))"
}

// CalculateCore implements coreCalculator.
func (*MemoizedRecursion) CalculateCore(ctx context.Context, reporter progress.ProgressCallback, n uint64) (*big.Int, error) {
	if n > MaxRecursiveIndex {
		return nil, apperrors.ValidationError{
			Field:   "n",
			Message: fmt.Sprintf("the recursive algorithm supports n <= %d, got %d", MaxRecursiveIndex, n),
		}
	}

	memo := make([]*big.Int, n+1)
	memo[0] = big.NewInt(0)
	if n >= 1 {
		memo[1] = big.NewInt(1)
	}
	var last float64

	var fib func(k uint64) (*big.Int, error)
	fib = func(k uint64) (*big.Int, error) {
		if memo[k] != nil {
			return memo[k], nil
		}
		if k%cancellationCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		prev, err := fib(k - 1)
		if err != nil {
			return nil, err
		}
		// fib(k-1) has filled memo[k-2].
		memo[k] = new(big.Int).Add(prev, memo[k-2])
		memo[k-2] = nil
		reportFraction(reporter, &last, k, n)
		return memo[k], nil
	}

	return fib(n)
}
