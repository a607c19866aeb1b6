package fibonacci

import (
	"context"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/agbru/numkit/internal/numeric"
	"github.com/agbru/numkit/internal/progress"
)

// fib computes F(n) with core, failing the property on error.
func fib(core coreCalculator, n uint64) *big.Int {
	v, err := core.CalculateCore(context.Background(), progress.NoOp, n)
	if err != nil {
		return big.NewInt(-1)
	}
	return v
}

func newProperties() *gopter.Properties {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 100
	return gopter.NewProperties(params)
}

// The linear calculators are checked against the golden file; the
// properties only drive the logarithmic ones.
func TestFibonacciIdentities(t *testing.T) {
	properties := newProperties()

	for _, core := range []coreCalculator{&OptimizedFastDoubling{}, &MatrixExponentiation{}} {
		name := core.Name()

		// F(n-1)F(n+1) - F(n)^2 = (-1)^n
		properties.Property(name+": Cassini", prop.ForAll(func(n uint64) bool {
			lhs := new(big.Int).Mul(fib(core, n-1), fib(core, n+1))
			fn := fib(core, n)
			lhs.Sub(lhs, fn.Mul(fn, fn))
			return lhs.Int64() == 1-2*int64(n%2)
		}, gen.UInt64Range(1, 20_000)))

		properties.Property(name+": recurrence", prop.ForAll(func(n uint64) bool {
			sum := new(big.Int).Add(fib(core, n-1), fib(core, n-2))
			return sum.Cmp(fib(core, n)) == 0
		}, gen.UInt64Range(2, 20_000)))

		// F(m+n) = F(m)F(n+1) + F(m-1)F(n)
		properties.Property(name+": addition", prop.ForAll(func(m, n uint64) bool {
			want := new(big.Int).Mul(fib(core, m), fib(core, n+1))
			want.Add(want, new(big.Int).Mul(fib(core, m-1), fib(core, n)))
			return want.Cmp(fib(core, m+n)) == 0
		}, gen.UInt64Range(1, 8_000), gen.UInt64Range(0, 8_000)))
	}

	properties.TestingRun(t)
}

func TestFibonacciDivisibility(t *testing.T) {
	properties := newProperties()
	core := &OptimizedFastDoubling{}

	properties.Property("gcd(F(m), F(n)) = F(gcd(m, n))", prop.ForAll(func(m, n uint64) bool {
		a, b := m, n
		for b != 0 {
			a, b = b, a%b
		}
		got := new(big.Int).GCD(nil, nil, fib(core, m), fib(core, n))
		return got.Cmp(fib(core, a)) == 0
	}, gen.UInt64Range(1, 4_000), gen.UInt64Range(1, 4_000)))

	properties.TestingRun(t)
}

func TestFibonacciRepresentations(t *testing.T) {
	properties := newProperties()
	core := &OptimizedFastDoubling{}

	properties.Property("uint64 path agrees below the overflow bound", prop.ForAll(func(n uint64) bool {
		v, err := numeric.Fibonacci(n)
		return err == nil && fib(core, n).Uint64() == v
	}, gen.UInt64Range(0, 93)))

	properties.Property("last digits agree with the full value", prop.ForAll(func(n uint64, k int) bool {
		got, err := LastDigits(n, k)
		if err != nil {
			return false
		}
		m := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(k)), nil)
		return got.Cmp(new(big.Int).Mod(fib(core, n), m)) == 0
	}, gen.UInt64Range(0, 10_000), gen.IntRange(1, 40)))

	properties.TestingRun(t)
}
