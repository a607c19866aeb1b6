package fibonacci

import (
	"fmt"
	"math/big"
	"math/bits"

	apperrors "github.com/agbru/numkit/internal/errors"
)

// FastDoublingMod computes F(n) mod m with the fast doubling identities
// reduced modulo m at every step. Memory stays O(log m) whatever n is, which
// is what makes the last K digits of huge indices cheap.
func FastDoublingMod(n uint64, m *big.Int) (*big.Int, error) {
	if m == nil || m.Sign() <= 0 {
		return nil, apperrors.ValidationError{Field: "modulus", Message: "must be positive"}
	}

	fk := big.NewInt(0)  // F(k)
	fk1 := big.NewInt(1) // F(k+1)
	t1, t2 := new(big.Int), new(big.Int)

	for i := bits.Len64(n) - 1; i >= 0; i-- {
		// big.Int.Mod is Euclidean, so t1 is never negative.
		t1.Lsh(fk1, 1)
		t1.Sub(t1, fk)
		t1.Mul(t1, fk)
		t1.Mod(t1, m)

		t2.Mul(fk1, fk1)
		fk.Mul(fk, fk)
		t2.Add(t2, fk)
		t2.Mod(t2, m)

		fk, t1 = t1, fk
		fk1, t2 = t2, fk1

		if (n>>uint(i))&1 == 1 {
			t1.Add(fk, fk1)
			t1.Mod(t1, m)
			fk, fk1, t1 = fk1, t1, fk
		}
	}
	return fk.Mod(fk, m), nil
}

// MaxLastDigits bounds k in LastDigits. The modulus 10^k has to stay small
// enough for a modular run to finish well within a request timeout.
const MaxLastDigits = 10_000

// LastDigits returns F(n) mod 10^k for 1 <= k <= MaxLastDigits.
func LastDigits(n uint64, k int) (*big.Int, error) {
	if k <= 0 || k > MaxLastDigits {
		return nil, apperrors.ValidationError{Field: "last-digits", Message: fmt.Sprintf("must be between 1 and %d, got %d", MaxLastDigits, k)}
	}
	m := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(k)), nil)
	return FastDoublingMod(n, m)
}
