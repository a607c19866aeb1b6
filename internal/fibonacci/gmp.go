//go:build gmp

package fibonacci

import (
	"context"
	"fmt"
	"math/big"
	"math/bits"

	"github.com/ncw/gmp"

	"github.com/agbru/numkit/internal/progress"
)

func init() {
	builtinCores["gmp"] = func() coreCalculator { return &GMPCalculator{} }
}

// GMPCalculator runs fast doubling on GMP integers. It is only compiled with
// the gmp build tag since it needs libgmp and cgo.
type GMPCalculator struct{}

// Name returns the algorithm description.
func (*GMPCalculator) Name() string {
	return "GMP Fast Doubling (O(log n))"
}

// CalculateCore implements coreCalculator.
func (*GMPCalculator) CalculateCore(ctx context.Context, reporter progress.ProgressCallback, n uint64) (*big.Int, error) {
	a := gmp.NewInt(0)
	b := gmp.NewInt(1)
	t1, t2, t3 := gmp.NewInt(0), gmp.NewInt(0), gmp.NewInt(0)

	numBits := bits.Len64(n)
	var last float64
	for i := numBits - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t1.Lsh(b, 1)
		t1.Sub(t1, a)
		t1.Mul(t1, a)
		t2.Mul(b, b)
		t3.Mul(a, a)
		t2.Add(t2, t3)
		a.Set(t1)
		b.Set(t2)
		if (n>>uint(i))&1 == 1 {
			t1.Add(a, b)
			a.Set(b)
			b.Set(t1)
		}
		progress.ReportStepProgress(reporter, &last, numBits-i, numBits)
	}

	result, ok := new(big.Int).SetString(a.String(), 10)
	if !ok {
		return nil, fmt.Errorf("gmp: cannot convert F(%d)", n)
	}
	return result, nil
}
