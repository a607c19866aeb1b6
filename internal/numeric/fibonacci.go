package numeric

import apperrors "github.com/agbru/numkit/internal/errors"

// MaxFibonacciIndex is the largest n for which F(n) fits in a uint64.
// F(93) = 12200160415121876738; F(94) exceeds 2^64-1.
const MaxFibonacciIndex = 93

// Fibonacci returns F(n) for F(0)=0, F(1)=1, F(n)=F(n-1)+F(n-2), evaluated
// iteratively in O(n). For n > MaxFibonacciIndex it returns 0 and an
// OverflowError; use the fibonacci package for arbitrary precision.
func Fibonacci(n uint64) (uint64, error) {
	if n > MaxFibonacciIndex {
		return 0, apperrors.NewOverflowError("fibonacci", "F(%d) exceeds uint64 (max index %d)", n, MaxFibonacciIndex)
	}
	var a, b uint64 = 0, 1
	for i := uint64(0); i < n; i++ {
		a, b = b, a+b
	}
	return a, nil
}
