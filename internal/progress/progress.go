// Package progress defines the progress reporting types shared by the
// Fibonacci calculators, the orchestrator and the presentation layers.
package progress

// ReportingThreshold is the minimum change in progress between two reports.
// Finer updates are dropped to keep channel traffic low.
const ReportingThreshold = 0.01

// ProgressUpdate is a progress sample sent by one calculator.
type ProgressUpdate struct {
	// CalculatorIndex identifies the calculator in a concurrent run.
	CalculatorIndex int
	// Value is the completed fraction, from 0.0 to 1.0.
	Value float64
}

// ProgressCallback receives the completed fraction of a calculation.
type ProgressCallback func(progress float64)

// NoOp is a ProgressCallback that ignores every update.
func NoOp(float64) {}

// ChannelReporter returns a callback that forwards updates to ch, tagged with
// index. Intermediate updates are dropped when ch is full so a slow consumer
// never stalls a calculation; the final 1.0 update is always delivered.
// A nil channel yields NoOp.
func ChannelReporter(ch chan<- ProgressUpdate, index int) ProgressCallback {
	if ch == nil {
		return NoOp
	}
	return func(v float64) {
		update := ProgressUpdate{CalculatorIndex: index, Value: v}
		if v >= 1.0 {
			ch <- update
			return
		}
		select {
		case ch <- update:
		default:
		}
	}
}

// ReportStepProgress reports step/total through reporter when it moved at
// least ReportingThreshold past *lastReported, or when the last step is
// reached. It updates *lastReported accordingly.
func ReportStepProgress(reporter ProgressCallback, lastReported *float64, step, total int) {
	if reporter == nil || total <= 0 {
		return
	}
	current := float64(step) / float64(total)
	if current > 1.0 {
		current = 1.0
	}
	if current-*lastReported >= ReportingThreshold || step >= total {
		reporter(current)
		*lastReported = current
	}
}
