package tui

import "strings"

const sparkLevels = "▁▂▃▄▅▆▇█"

// sampleWindow keeps the most recent samples up to a fixed size.
type sampleWindow struct {
	size    int
	samples []float64
}

func newSampleWindow(size int) *sampleWindow {
	return &sampleWindow{size: max(size, 1)}
}

func (w *sampleWindow) Push(v float64) {
	w.samples = append(w.samples, v)
	if over := len(w.samples) - w.size; over > 0 {
		w.samples = append(w.samples[:0], w.samples[over:]...)
	}
}

func (w *sampleWindow) Len() int { return len(w.samples) }

// Last returns the newest sample, or 0 when the window is empty.
func (w *sampleWindow) Last() float64 {
	if len(w.samples) == 0 {
		return 0
	}
	return w.samples[len(w.samples)-1]
}

// Values returns a copy of the samples, oldest first.
func (w *sampleWindow) Values() []float64 {
	if len(w.samples) == 0 {
		return nil
	}
	return append([]float64(nil), w.samples...)
}

// Sparkline draws one block per value, scaled so the largest value is a
// full block. Negative values draw as the lowest block.
func Sparkline(values []float64) string {
	levels := []rune(sparkLevels)
	top := len(levels) - 1

	var peak float64
	for _, v := range values {
		peak = max(peak, v)
	}

	var b strings.Builder
	for _, v := range values {
		idx := 0
		if peak > 0 && v > 0 {
			idx = min(int(v/peak*float64(top)), top)
		}
		b.WriteRune(levels[idx])
	}
	return b.String()
}
