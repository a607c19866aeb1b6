package numeric

import (
	"errors"
	"math"
	"math/big"
	"slices"
	"testing"

	apperrors "github.com/agbru/numkit/internal/errors"
)

func TestSum(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		a, b    int64
		want    int64
		wantErr bool
	}{
		{"zeros", 0, 0, 0, false},
		{"positive", 2, 3, 5, false},
		{"mixed signs", -7, 3, -4, false},
		{"max plus min", math.MaxInt64, math.MinInt64, -1, false},
		{"max plus zero", math.MaxInt64, 0, math.MaxInt64, false},
		{"positive overflow", math.MaxInt64, 1, 0, true},
		{"negative overflow", math.MinInt64, -1, 0, true},
		{"both min", math.MinInt64, math.MinInt64, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Sum(tt.a, tt.b)
			if tt.wantErr {
				if !errors.Is(err, apperrors.ErrOverflow) {
					t.Fatalf("Sum(%d, %d) error = %v, want ErrOverflow", tt.a, tt.b, err)
				}
				if got != 0 {
					t.Errorf("Sum(%d, %d) = %d on overflow, want 0", tt.a, tt.b, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Sum(%d, %d) unexpected error: %v", tt.a, tt.b, err)
			}
			if got != tt.want {
				t.Errorf("Sum(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestIsNonEmpty(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"x", true},
		{" ", true},
		{"héllo", true},
	}
	for _, tt := range tests {
		if got := IsNonEmpty(tt.in); got != tt.want {
			t.Errorf("IsNonEmpty(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSortAndSum(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		in      []int64
		want    int64
		wantErr bool
	}{
		{"nil", nil, 0, false},
		{"empty", []int64{}, 0, false},
		{"single", []int64{42}, 42, false},
		{"unsorted", []int64{3, 1, 2}, 6, false},
		{"negatives", []int64{-5, 10, -5}, 0, false},
		{"intermediate underflow recovers", []int64{math.MaxInt64, -1, math.MinInt64}, -2, false},
		{"intermediate overflow recovers", []int64{math.MaxInt64, math.MaxInt64, math.MinInt64, math.MinInt64, 5}, 3, false},
		{"final overflow", []int64{math.MaxInt64, 1}, 0, true},
		{"final underflow", []int64{math.MinInt64, -1, 0}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			in := slices.Clone(tt.in)
			got, err := SortAndSum(in)
			if tt.wantErr {
				if !errors.Is(err, apperrors.ErrOverflow) {
					t.Fatalf("SortAndSum(%v) error = %v, want ErrOverflow", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SortAndSum(%v) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("SortAndSum(%v) = %d, want %d", tt.in, got, tt.want)
			}
			if !slices.IsSorted(in) {
				t.Errorf("SortAndSum should leave the input sorted, got %v", in)
			}
		})
	}
}

func TestAccumulator(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator(10)
	if v, err := acc.Add(5); err != nil || v != 15 {
		t.Fatalf("Add(5) = %d, %v; want 15, nil", v, err)
	}
	if v, err := acc.Add(-20); err != nil || v != -5 {
		t.Fatalf("Add(-20) = %d, %v; want -5, nil", v, err)
	}

	full := NewAccumulator(math.MaxInt64)
	v, err := full.Add(1)
	if !errors.Is(err, apperrors.ErrOverflow) {
		t.Fatalf("Add on max value error = %v, want ErrOverflow", err)
	}
	if v != math.MaxInt64 || full.Value() != math.MaxInt64 {
		t.Errorf("overflowing Add must leave the total unchanged, got %d", full.Value())
	}

	var zero Accumulator
	if zero.Value() != 0 {
		t.Errorf("zero Accumulator value = %d, want 0", zero.Value())
	}
}

// FuzzSortAndSum checks SortAndSum against an arbitrary-precision reference.
func FuzzSortAndSum(f *testing.F) {
	f.Add(int64(3), int64(1), int64(2))
	f.Add(int64(math.MaxInt64), int64(1), int64(-1))
	f.Add(int64(math.MinInt64), int64(-1), int64(math.MaxInt64))
	f.Add(int64(0), int64(0), int64(0))

	f.Fuzz(func(t *testing.T, a, b, c int64) {
		ref := new(big.Int).SetInt64(a)
		ref.Add(ref, big.NewInt(b))
		ref.Add(ref, big.NewInt(c))

		got, err := SortAndSum([]int64{a, b, c})
		if !ref.IsInt64() {
			if !errors.Is(err, apperrors.ErrOverflow) {
				t.Fatalf("SortAndSum(%d, %d, %d) = %d, %v; want overflow", a, b, c, got, err)
			}
			return
		}
		if err != nil {
			t.Fatalf("SortAndSum(%d, %d, %d) unexpected error: %v", a, b, c, err)
		}
		if got != ref.Int64() {
			t.Errorf("SortAndSum(%d, %d, %d) = %d, want %s", a, b, c, got, ref)
		}
	})
}
