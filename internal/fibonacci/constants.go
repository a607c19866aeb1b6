package fibonacci

// ─────────────────────────────────────────────────────────────────────────────
// Performance Tuning Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// DefaultParallelThreshold is the operand size, in bits, above which the
	// three multiplications of a fast doubling step run on separate goroutines.
	// Below it, goroutine overhead exceeds the gain.
	DefaultParallelThreshold = 4096

	// MaxRecursiveIndex bounds the memoized recursive calculator. Its call
	// depth and running time grow linearly and quadratically with n.
	MaxRecursiveIndex = 100_000

	// cancellationCheckInterval is how many loop iterations the linear
	// calculators run between two context checks.
	cancellationCheckInterval = 4096
)

// ─────────────────────────────────────────────────────────────────────────────
// Estimation Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// FibonacciGrowthFactor is log2(phi), where phi ≈ 1.618 (golden ratio).
	// F(n) has about n * FibonacciGrowthFactor bits.
	FibonacciGrowthFactor = 0.69424

	// DigitsPerBit is log10(2), used to turn a bit length into decimal digits.
	DigitsPerBit = 0.30103
)

// EstimateDigits returns the approximate number of decimal digits of F(n).
func EstimateDigits(n uint64) uint64 {
	return uint64(float64(n)*FibonacciGrowthFactor*DigitsPerBit) + 1
}
