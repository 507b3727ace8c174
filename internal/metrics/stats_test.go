package metrics

import (
	"math"
	"testing"
	"time"
)

func TestWindowSnapshot(t *testing.T) {
	var w Window
	w.Record(20*time.Millisecond, 1.2, 4.0)
	w.Record(10*time.Millisecond, 0.8, 2.0)
	snap := w.Snapshot()
	if math.Abs(snap.StepsPerSec-66.6666) > 0.1 {
		t.Fatalf("unexpected rate %.2f", snap.StepsPerSec)
	}
	if math.Abs(snap.AvgGradNorm-3.0) > 1e-9 {
		t.Fatalf("unexpected grad norm %.4f", snap.AvgGradNorm)
	}
	if snap.LastLoss != 0.8 {
		t.Fatalf("expected last loss 0.8, got %.2f", snap.LastLoss)
	}
	if w.steps != 0 || w.gradSum != 0 {
		t.Fatalf("window was not reset")
	}
}
