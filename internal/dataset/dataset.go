package dataset

import (
	"errors"
	"fmt"
)

// ErrLenMismatch reports paired slices of different lengths.
var ErrLenMismatch = errors.New("inputs and observations have different lengths")

// Dataset holds paired one-dimensional inputs and observations.
type Dataset struct {
	X []float64
	Y []float64
}

// New validates the pairing and returns a dataset.
func New(x, y []float64) (Dataset, error) {
	if len(x) != len(y) {
		return Dataset{}, fmt.Errorf("x has length %d, y has length %d: %w", len(x), len(y), ErrLenMismatch)
	}
	return Dataset{X: x, Y: y}, nil
}

// Len returns the number of observations.
func (d Dataset) Len() int { return len(d.X) }

// Mean returns the mean observation, or 0 for an empty dataset.
func (d Dataset) Mean() float64 {
	if len(d.Y) == 0 {
		return 0
	}
	var sum float64
	for _, v := range d.Y {
		sum += v
	}
	return sum / float64(len(d.Y))
}

// Variance returns the population variance of the observations.
func (d Dataset) Variance() float64 {
	if len(d.Y) == 0 {
		return 0
	}
	mean := d.Mean()
	var sum float64
	for _, v := range d.Y {
		dv := v - mean
		sum += dv * dv
	}
	return sum / float64(len(d.Y))
}

// Span returns the extent of the inputs, max(X) - min(X).
func (d Dataset) Span() float64 {
	if len(d.X) == 0 {
		return 0
	}
	lo, hi := d.X[0], d.X[0]
	for _, v := range d.X[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return hi - lo
}

// Nyquist estimates the highest recoverable frequency, half the inverse of
// the average input spacing. Returns 0 when fewer than two inputs exist or
// the inputs are degenerate.
func (d Dataset) Nyquist() float64 {
	span := d.Span()
	if len(d.X) < 2 || span <= 0 {
		return 0
	}
	return 0.5 * float64(len(d.X)-1) / span
}
