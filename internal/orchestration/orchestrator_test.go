package orchestration

import (
	"context"
	"errors"
	"io"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/numkit/internal/errors"
	"github.com/agbru/numkit/internal/fibonacci"
	"github.com/agbru/numkit/internal/progress"
)

// stubCalculator runs fn in place of a real algorithm.
type stubCalculator struct {
	name string
	fn   func(ctx context.Context, report progress.ProgressCallback) (*big.Int, error)
}

func (s *stubCalculator) Name() string { return s.name }

func (s *stubCalculator) Calculate(ctx context.Context, ch chan<- progress.ProgressUpdate, index int, _ uint64) (*big.Int, error) {
	report := func(v float64) {
		if ch != nil {
			ch <- progress.ProgressUpdate{CalculatorIndex: index, Value: v}
		}
	}
	return s.fn(ctx, report)
}

func calcFunc(name string, fn func(ctx context.Context, report progress.ProgressCallback) (*big.Int, error)) *stubCalculator {
	return &stubCalculator{name: name, fn: fn}
}

// recordingPresenter captures what AnalyzeComparisonResults presents.
type recordingPresenter struct {
	table   []CalculationResult
	result  *CalculationResult
	opts    PresentationOptions
	handled error
}

func (r *recordingPresenter) PresentComparisonTable(results []CalculationResult, _ io.Writer) {
	r.table = append([]CalculationResult(nil), results...)
}

func (r *recordingPresenter) PresentResult(result CalculationResult, opts PresentationOptions, _ io.Writer) {
	r.result = &result
	r.opts = opts
}

func (r *recordingPresenter) HandleError(err error, _ time.Duration, _ io.Writer) int {
	r.handled = err
	return apperrors.ExitCode(err)
}

func TestExecuteCalculations_KeepsInputOrder(t *testing.T) {
	t.Parallel()

	calcs := []fibonacci.Calculator{
		calcFunc("slow", sleeping(time.Millisecond)),
		calcFunc("broken", failing),
		calcFunc("quick", instant),
	}
	results := ExecuteCalculations(context.Background(), calcs, 10, NullProgressReporter{}, io.Discard)

	require.Len(t, results, 3)
	assert.Equal(t, "slow", results[0].Name)
	assert.NoError(t, results[0].Err)
	assert.Positive(t, results[0].Duration)
	assert.Equal(t, "broken", results[1].Name)
	assert.EqualError(t, results[1].Err, "simulated error")
	assert.Nil(t, results[1].Result)
	assert.Equal(t, "quick", results[2].Name)
	assert.Equal(t, int64(1), results[2].Result.Int64())
}

func TestAnalyzeComparisonResults(t *testing.T) {
	t.Parallel()

	ok := func(name string, v int64) CalculationResult {
		return CalculationResult{Name: name, Result: big.NewInt(v), Duration: time.Millisecond}
	}
	bad := func(name string, err error) CalculationResult {
		return CalculationResult{Name: name, Err: err, Duration: time.Millisecond}
	}

	tests := []struct {
		name    string
		results []CalculationResult
		want    int
		status  string
	}{
		{"consistent", []CalculationResult{ok("a", 5), ok("b", 5)}, apperrors.ExitSuccess, "Success"},
		{"one failure", []CalculationResult{ok("a", 5), bad("b", errors.New("x"))}, apperrors.ExitSuccess, "Success"},
		{"mismatch", []CalculationResult{ok("a", 5), ok("b", 6)}, apperrors.ExitErrorMismatch, "CRITICAL ERROR"},
		{"all failed", []CalculationResult{bad("a", errors.New("x")), bad("b", errors.New("y"))}, apperrors.ExitErrorGeneric, "Failure"},
		{"all timed out", []CalculationResult{bad("a", context.DeadlineExceeded)}, apperrors.ExitErrorTimeout, "Failure"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out strings.Builder
			p := &recordingPresenter{}
			assert.Equal(t, tt.want, AnalyzeComparisonResults(tt.results, PresentationOptions{}, p, p, &out))
			assert.Contains(t, out.String(), "Global Status: "+tt.status)
			assert.Len(t, p.table, len(tt.results))
			if tt.status == "Failure" {
				assert.Error(t, p.handled)
				assert.Nil(t, p.result)
			}
		})
	}
}

func TestAnalyzeComparisonResults_SortsAndPresentsFastest(t *testing.T) {
	t.Parallel()

	results := []CalculationResult{
		{Name: "failed", Err: errors.New("fail"), Duration: time.Nanosecond},
		{Name: "slow", Result: big.NewInt(8), Duration: 2 * time.Second},
		{Name: "fast", Result: big.NewInt(8), Duration: time.Second},
	}
	p := &recordingPresenter{}
	opts := PresentationOptions{N: 6, ShowValue: true}

	require.Equal(t, apperrors.ExitSuccess, AnalyzeComparisonResults(results, opts, p, p, io.Discard))
	names := make([]string, 0, len(p.table))
	for _, r := range p.table {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"fast", "slow", "failed"}, names)
	require.NotNil(t, p.result)
	assert.Equal(t, "fast", p.result.Name)
	assert.Equal(t, opts, p.opts)
}

func TestExecuteCalculations_RealCalculators(t *testing.T) {
	t.Parallel()

	calcs, err := GetCalculatorsToRun(AllAlgorithms, fibonacci.NewDefaultFactory())
	require.NoError(t, err)

	results := ExecuteCalculations(context.Background(), calcs, 1000, NullProgressReporter{}, io.Discard)
	require.Len(t, results, len(calcs))
	for i, r := range results {
		require.NoError(t, r.Err)
		assert.Equal(t, calcs[i].Name(), r.Name)
		assert.Zero(t, r.Result.Cmp(results[0].Result))
	}
	p := &recordingPresenter{}
	assert.Equal(t, apperrors.ExitSuccess, AnalyzeComparisonResults(results, PresentationOptions{N: 1000}, p, p, io.Discard))
}
