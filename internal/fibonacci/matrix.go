package fibonacci

import (
	"context"
	"math/big"
	"math/bits"

	"github.com/agbru/numkit/internal/progress"
)

// MatrixExponentiation computes F(n) as the top-right entry of Q^n where
//
//	Q = | 1 1 |
//	    | 1 0 |
//
// Powers of Q are symmetric, so a matrix is held as its three distinct
// entries and a product costs five multiplications instead of eight.
type MatrixExponentiation struct{}

// Name returns the algorithm description.
func (*MatrixExponentiation) Name() string {
	return "Matrix Exponentiation (O(log n))"
}

// symMatrix is the symmetric matrix | a b |
//
//	| b c |
type symMatrix struct {
	a, b, c *big.Int
}

func newSymMatrix(a, b, c int64) *symMatrix {
	return &symMatrix{a: big.NewInt(a), b: big.NewInt(b), c: big.NewInt(c)}
}

// mulInto stores x*y in dst. dst must not alias x or y. The product of two
// powers of Q is symmetric, which is the only case this is used for.
func mulInto(dst, x, y *symMatrix, t, u *big.Int) {
	t.Mul(x.b, y.b)
	u.Mul(x.b, y.c)
	dst.b.Mul(x.a, y.b)
	dst.b.Add(dst.b, u)
	dst.a.Mul(x.a, y.a)
	dst.a.Add(dst.a, t)
	dst.c.Mul(x.c, y.c)
	dst.c.Add(dst.c, t)
}

// CalculateCore implements coreCalculator.
func (*MatrixExponentiation) CalculateCore(ctx context.Context, reporter progress.ProgressCallback, n uint64) (*big.Int, error) {
	result := newSymMatrix(1, 0, 1)
	base := newSymMatrix(1, 1, 0)
	scratch := newSymMatrix(0, 0, 0)
	t, u := new(big.Int), new(big.Int)

	numBits := bits.Len64(n)
	var last float64
	for i := 0; i < numBits; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if (n>>uint(i))&1 == 1 {
			mulInto(scratch, result, base, t, u)
			result, scratch = scratch, result
		}
		if i < numBits-1 {
			mulInto(scratch, base, base, t, u)
			base, scratch = scratch, base
		}
		progress.ReportStepProgress(reporter, &last, i+1, numBits)
	}
	return result.b, nil
}
