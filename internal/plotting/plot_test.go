package plotting

import (
	"os"
	"path/filepath"
	"testing"

	"gpfit/internal/dataset"
)

func TestPosteriorWritesPNG(t *testing.T) {
	data := dataset.Synthetic(20, 0.1, 3)
	xs := []float64{0, 2, 4, 6, 8, 10}
	mean := []float64{0, 0.5, -0.5, 0.2, -0.2, 0}
	variance := []float64{0.1, 0.2, 0.1, 0.3, 0.2, 0.1}

	path := filepath.Join(t.TempDir(), "out", "fit.png")
	if err := Posterior(path, data, xs, mean, variance); err != nil {
		t.Fatalf("Posterior: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("empty plot file")
	}
}

func TestPosteriorRejectsMismatchedGrid(t *testing.T) {
	data := dataset.Synthetic(5, 0.1, 1)
	err := Posterior(filepath.Join(t.TempDir(), "fit.png"), data,
		[]float64{0, 1}, []float64{0}, []float64{0.1, 0.1})
	if err == nil {
		t.Fatalf("expected error for mismatched lengths")
	}
}
