package numeric

import (
	"math/big"
	"slices"

	apperrors "github.com/agbru/numkit/internal/errors"
)

// Sum returns a + b. If the result does not fit in an int64 it returns 0 and
// an OverflowError.
func Sum(a, b int64) (int64, error) {
	s, ok := addInt64(a, b)
	if !ok {
		return 0, apperrors.NewOverflowError("sum", "%d + %d exceeds int64", a, b)
	}
	return s, nil
}

// IsNonEmpty reports whether text has a nonzero length.
func IsNonEmpty(text string) bool {
	return len(text) > 0
}

// SortAndSum sorts numbers ascending in place and returns their sum.
// An empty or nil slice sums to 0.
//
// The result is exact and does not depend on the input order: partial sums
// are allowed to leave the int64 range as long as the final sum fits.
// Only a final sum outside int64 yields an OverflowError.
func SortAndSum(numbers []int64) (int64, error) {
	slices.Sort(numbers)

	var total int64
	for i, v := range numbers {
		next, ok := addInt64(total, v)
		if !ok {
			return sumWide(numbers, i, total)
		}
		total = next
	}
	return total, nil
}

// sumWide finishes a sum whose int64 fast path overflowed at index from.
func sumWide(numbers []int64, from int, partial int64) (int64, error) {
	acc := big.NewInt(partial)
	var tmp big.Int
	for _, v := range numbers[from:] {
		acc.Add(acc, tmp.SetInt64(v))
	}
	if !acc.IsInt64() {
		return 0, apperrors.NewOverflowError("sortsum", "sum of %d values is %s, outside int64", len(numbers), acc.String())
	}
	return acc.Int64(), nil
}

func addInt64(a, b int64) (int64, bool) {
	s := a + b
	// Overflow happened iff both operands share a sign the result lacks.
	if (a > 0 && b > 0 && s < 0) || (a < 0 && b < 0 && s >= 0) {
		return 0, false
	}
	return s, true
}

// Accumulator keeps a running int64 total. Its zero value starts at 0.
// It is not safe for concurrent use.
type Accumulator struct {
	value int64
}

// NewAccumulator returns an Accumulator starting at initial.
func NewAccumulator(initial int64) *Accumulator {
	return &Accumulator{value: initial}
}

// Add adds amount to the total and returns the new total. On overflow the
// total is left unchanged and an OverflowError is returned.
func (a *Accumulator) Add(amount int64) (int64, error) {
	next, ok := addInt64(a.value, amount)
	if !ok {
		return a.value, apperrors.NewOverflowError("accumulate", "%d + %d exceeds int64", a.value, amount)
	}
	a.value = next
	return next, nil
}

// Value returns the current total.
func (a *Accumulator) Value() int64 {
	return a.value
}
