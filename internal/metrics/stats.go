package metrics

import "time"

// Window accumulates per-step fit statistics.
type Window struct {
	steps    int
	elapsed  time.Duration
	gradSum  float64
	lastLoss float64
}

// Record adds one optimization step to the window.
func (w *Window) Record(stepTime time.Duration, loss, gradNorm float64) {
	w.steps++
	w.elapsed += stepTime
	w.gradSum += gradNorm
	w.lastLoss = loss
}

// Snapshot returns aggregated metrics and resets the window.
func (w *Window) Snapshot() Snapshot {
	snap := Snapshot{LastLoss: w.lastLoss}
	if w.elapsed > 0 {
		snap.StepsPerSec = float64(w.steps) / w.elapsed.Seconds()
	}
	if w.steps > 0 {
		snap.AvgStepMS = (w.elapsed.Seconds() * 1000) / float64(w.steps)
		snap.AvgGradNorm = w.gradSum / float64(w.steps)
	}

	w.steps = 0
	w.elapsed = 0
	w.gradSum = 0
	return snap
}

// Snapshot represents loggable metrics.
type Snapshot struct {
	StepsPerSec float64
	AvgStepMS   float64
	AvgGradNorm float64
	LastLoss    float64
}
