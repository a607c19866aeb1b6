package orchestration

import (
	"time"

	"github.com/agbru/numkit/internal/format"
	"github.com/agbru/numkit/internal/progress"
)

// ProgressAggregator folds the updates of several calculators into one
// average with a smoothed ETA. It is not safe for concurrent use; the
// progress display goroutine owns it.
type ProgressAggregator struct {
	eta *format.ProgressWithETA
	n   int
}

// NewProgressAggregator returns an aggregator for numCalculators
// calculators, or nil when there is nothing to track.
func NewProgressAggregator(numCalculators int) *ProgressAggregator {
	if numCalculators <= 0 {
		return nil
	}
	return &ProgressAggregator{eta: format.NewProgressWithETA(numCalculators), n: numCalculators}
}

// AggregatedProgress is the view of all calculators after one update.
type AggregatedProgress struct {
	CalculatorIndex int           // sender of the update
	Value           float64       // the sender's progress, 0 to 1
	AverageProgress float64       // mean over all calculators
	ETA             time.Duration // 0 while unknown
}

// Update records one calculator's progress.
func (a *ProgressAggregator) Update(update progress.ProgressUpdate) AggregatedProgress {
	avg, eta := a.eta.UpdateWithETA(update.CalculatorIndex, update.Value)
	return AggregatedProgress{
		CalculatorIndex: update.CalculatorIndex,
		Value:           update.Value,
		AverageProgress: avg,
		ETA:             eta,
	}
}

// CalculateAverage returns the current mean progress.
func (a *ProgressAggregator) CalculateAverage() float64 { return a.eta.CalculateAverage() }

// GetETA returns the current estimate without recording anything.
func (a *ProgressAggregator) GetETA() time.Duration { return a.eta.GetETA() }

// NumCalculators returns the number of tracked calculators.
func (a *ProgressAggregator) NumCalculators() int { return a.n }

// IsMultiCalculator reports whether several algorithms are compared.
func (a *ProgressAggregator) IsMultiCalculator() bool { return a.n > 1 }

// DrainChannel discards updates until progressChan is closed, so senders
// never block when nobody displays progress.
func DrainChannel(progressChan <-chan progress.ProgressUpdate) {
	for range progressChan {
	}
}
