// Package numeric provides the small integer and geometry utilities at the
// heart of numkit: checked addition, sort-and-sum over a sequence, Fibonacci
// numbers that fit in a uint64, Euclidean distance between 2D points, and a
// plain person record.
//
// Integer operations never wrap or saturate. A result that does not fit its
// type is reported as an apperrors.OverflowError, which matches
// apperrors.ErrOverflow under errors.Is. Floating-point operations follow
// IEEE-754 and let NaN and Inf propagate.
//
// Every function is pure and safe for concurrent use. Accumulator is the one
// stateful type and must not be shared between goroutines without locking.
package numeric
