package gp

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"gpfit/internal/dataset"
	"gpfit/internal/kernel"
)

func testData(t *testing.T, n int) dataset.Dataset {
	t.Helper()
	return dataset.Synthetic(n, 0.2, 99)
}

func TestNegLogLikGradient(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	data := testData(t, 12)
	kern := kernel.InitSpectralMixture(2, data.Span(), data.Nyquist(), data.Variance(), rng)
	model := New(kern, data, Config{Noise: 0.3, Mean: data.Mean()})

	grad := make([]float64, model.NumParams())
	if _, err := model.NegLogLik(grad); err != nil {
		t.Fatalf("NegLogLik: %v", err)
	}

	const h = 1e-5
	base := model.Params()
	for p := range base {
		plus := append([]float64(nil), base...)
		minus := append([]float64(nil), base...)
		plus[p] += h
		minus[p] -= h

		model.SetParams(plus)
		up, err := model.NegLogLik(nil)
		if err != nil {
			t.Fatalf("NegLogLik(+h): %v", err)
		}
		model.SetParams(minus)
		down, err := model.NegLogLik(nil)
		if err != nil {
			t.Fatalf("NegLogLik(-h): %v", err)
		}
		model.SetParams(base)

		numeric := (up - down) / (2 * h)
		diff := math.Abs(numeric - grad[p])
		scale := math.Max(1, math.Abs(numeric))
		if diff/scale > 1e-4 {
			t.Fatalf("param %d: analytic %.8f numeric %.8f", p, grad[p], numeric)
		}
	}
}

func TestPredictInterpolatesWithLowNoise(t *testing.T) {
	x := make([]float64, 10)
	y := make([]float64, 10)
	for i := range x {
		x[i] = float64(i) * 0.3
		y[i] = math.Sin(x[i])
	}
	data, err := dataset.New(x, y)
	if err != nil {
		t.Fatalf("New dataset: %v", err)
	}
	model := New(kernel.NewRBF(1.0, 1.0), data, Config{Noise: 1e-3})

	mean, variance, err := model.Predict(x)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	for i := range x {
		if math.Abs(mean[i]-y[i]) > 0.02 {
			t.Fatalf("posterior mean at x=%f is %f, want ~%f", x[i], mean[i], y[i])
		}
		if variance[i] < 0 {
			t.Fatalf("negative variance %f at x=%f", variance[i], x[i])
		}
	}
}

func TestPredictVarianceGrowsAwayFromData(t *testing.T) {
	data, err := dataset.New([]float64{0, 0.5, 1}, []float64{0, 0.4, 0.8})
	if err != nil {
		t.Fatalf("New dataset: %v", err)
	}
	model := New(kernel.NewRBF(1.0, 0.5), data, Config{Noise: 0.05})

	_, variance, err := model.Predict([]float64{0.5, 20})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if variance[0] >= variance[1] {
		t.Fatalf("expected variance to grow away from data: near=%f far=%f", variance[0], variance[1])
	}
}

func TestEmptyDataset(t *testing.T) {
	model := New(kernel.NewRBF(1, 1), dataset.Dataset{}, Config{})
	if _, err := model.NegLogLik(nil); !errors.Is(err, ErrEmptyDataset) {
		t.Fatalf("expected ErrEmptyDataset, got %v", err)
	}
	if _, _, err := model.Predict([]float64{0}); !errors.Is(err, ErrEmptyDataset) {
		t.Fatalf("expected ErrEmptyDataset from Predict, got %v", err)
	}
}

func TestSingleObservation(t *testing.T) {
	data, err := dataset.New([]float64{1}, []float64{2})
	if err != nil {
		t.Fatalf("New dataset: %v", err)
	}
	model := New(kernel.NewRBF(1, 1), data, Config{Noise: 0.1})
	if _, err := model.NegLogLik(nil); err != nil {
		t.Fatalf("NegLogLik on single observation: %v", err)
	}
	mean, _, err := model.Predict([]float64{1})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if math.Abs(mean[0]-2) > 0.5 {
		t.Fatalf("posterior mean %f too far from lone observation", mean[0])
	}
}
