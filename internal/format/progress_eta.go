package format

import (
	"fmt"
	"strings"
	"time"
)

// maxETA caps estimates so a stalled calculation never shows absurd values.
const maxETA = 24 * time.Hour

// rateSmoothing is the weight of the newest sample in the progress rate
// exponential moving average.
const rateSmoothing = 0.3

// ProgressState tracks the progress of several concurrent calculators.
type ProgressState struct {
	progresses     []float64
	numCalculators int
}

// NewProgressState returns a state for numCalculators calculators.
func NewProgressState(numCalculators int) *ProgressState {
	if numCalculators < 0 {
		numCalculators = 0
	}
	return &ProgressState{
		progresses:     make([]float64, numCalculators),
		numCalculators: numCalculators,
	}
}

// Update records value for calculator index. Out of range indices are
// ignored and values are clamped to [0, 1].
func (s *ProgressState) Update(index int, value float64) {
	if index < 0 || index >= len(s.progresses) {
		return
	}
	s.progresses[index] = clamp01(value)
}

// CalculateAverage returns the mean progress of all calculators.
func (s *ProgressState) CalculateAverage() float64 {
	if s.numCalculators == 0 {
		return 0
	}
	var total float64
	for _, p := range s.progresses {
		total += p
	}
	return total / float64(s.numCalculators)
}

// ProgressWithETA extends ProgressState with a smoothed completion rate used
// to estimate the remaining time.
type ProgressWithETA struct {
	*ProgressState
	numCalculators int
	startTime      time.Time
	lastUpdate     time.Time
	lastProgress   float64
	// progressRate is the smoothed progress per second.
	progressRate float64
}

// NewProgressWithETA returns a ProgressWithETA started now.
func NewProgressWithETA(numCalculators int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		ProgressState:  NewProgressState(numCalculators),
		numCalculators: numCalculators,
		startTime:      now,
		lastUpdate:     now,
	}
}

// UpdateWithETA records value for calculator index and returns the average
// progress with the updated ETA.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.Update(index, value)
	avg := p.CalculateAverage()

	now := time.Now()
	if elapsed := now.Sub(p.lastUpdate).Seconds(); elapsed > 0 && avg > p.lastProgress {
		rate := (avg - p.lastProgress) / elapsed
		if p.progressRate == 0 {
			p.progressRate = rate
		} else {
			p.progressRate = rateSmoothing*rate + (1-rateSmoothing)*p.progressRate
		}
		p.lastProgress = avg
		p.lastUpdate = now
	}
	return avg, p.GetETA()
}

// GetETA returns the estimated remaining time, or 0 while the rate is
// unknown.
func (p *ProgressWithETA) GetETA() time.Duration {
	if p.progressRate <= 0 {
		return 0
	}
	remaining := 1 - p.CalculateAverage()
	if remaining <= 0 {
		return 0
	}
	seconds := remaining / p.progressRate
	if seconds > maxETA.Seconds() {
		return maxETA
	}
	return time.Duration(seconds * float64(time.Second))
}

// FormatETA renders an ETA compactly, such as "45s", "2m30s" or "1h15m".
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		m := int(eta.Minutes())
		if s := int(eta.Seconds()) % 60; s > 0 {
			return fmt.Sprintf("%dm%ds", m, s)
		}
		return fmt.Sprintf("%dm", m)
	default:
		h := int(eta.Hours())
		if m := int(eta.Minutes()) % 60; m > 0 {
			return fmt.Sprintf("%dh%dm", h, m)
		}
		return fmt.Sprintf("%dh", h)
	}
}

// ProgressBar renders a bar of length cells filled to progress.
func ProgressBar(progress float64, length int) string {
	if length <= 0 {
		return ""
	}
	filled := int(clamp01(progress) * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatProgressBarWithETA renders "[bar]  42.00% ETA: 3s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %6.2f%% ETA: %s", ProgressBar(progress, width), clamp01(progress)*100, FormatETA(eta))
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
