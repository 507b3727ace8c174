// Package gp implements exact Gaussian-process regression over
// one-dimensional inputs: a kernel, a constant mean and an observation
// noise term, with the negative log marginal likelihood and its analytic
// gradient as the training objective.
package gp

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"gpfit/internal/dataset"
	"gpfit/internal/kernel"
)

const logTwoPi = 1.8378770664093453

// ErrEmptyDataset reports a fit attempted without observations.
var ErrEmptyDataset = errors.New("gp: dataset has no observations")

// jitterLadder holds the diagonal boosts tried when the covariance fails
// to factorize.
var jitterLadder = []float64{0, 1e-10, 1e-8, 1e-6, 1e-4}

// Config holds the starting point for the non-kernel hyperparameters.
type Config struct {
	Noise float64 // observation noise standard deviation
	Mean  float64 // constant mean
}

// Regressor is a Gaussian process over a fixed dataset. Its parameter
// vector is the kernel's vector followed by the log noise standard
// deviation and the unconstrained constant mean.
type Regressor struct {
	kern     kernel.Kernel
	data     dataset.Dataset
	logNoise float64
	mean     float64
}

// New constructs a regressor. A non-positive noise falls back to 0.1.
func New(k kernel.Kernel, d dataset.Dataset, cfg Config) *Regressor {
	noise := cfg.Noise
	if noise <= 0 {
		noise = 0.1
	}
	return &Regressor{
		kern:     k,
		data:     d,
		logNoise: math.Log(noise),
		mean:     cfg.Mean,
	}
}

// Kernel returns the regressor's covariance function.
func (r *Regressor) Kernel() kernel.Kernel { return r.kern }

// Noise returns the observation noise standard deviation.
func (r *Regressor) Noise() float64 { return math.Exp(r.logNoise) }

// Mean returns the constant mean.
func (r *Regressor) Mean() float64 { return r.mean }

// Data returns the training dataset.
func (r *Regressor) Data() dataset.Dataset { return r.data }

// NumParams returns the length of the parameter vector.
func (r *Regressor) NumParams() int { return r.kern.NumParams() + 2 }

// Params returns a copy of the parameter vector.
func (r *Regressor) Params() []float64 {
	return append(r.kern.Params(), r.logNoise, r.mean)
}

// SetParams replaces the parameter vector.
func (r *Regressor) SetParams(p []float64) {
	nk := r.kern.NumParams()
	r.kern.SetParams(p[:nk])
	r.logNoise = p[nk]
	r.mean = p[nk+1]
}

// factor builds the noisy covariance, factorizes it and solves for
// alpha = K^-1 (y - m). Failed factorizations retry with growing jitter.
func (r *Regressor) factor() (*mat.Cholesky, *mat.VecDense, error) {
	n := r.data.Len()
	if n == 0 {
		return nil, nil, ErrEmptyDataset
	}
	sn2 := math.Exp(2 * r.logNoise)

	base := kernel.Gram(r.kern, r.data.X)
	var chol mat.Cholesky
	factored := false
	for _, jitter := range jitterLadder {
		k := mat.NewSymDense(n, nil)
		k.CopySym(base)
		for i := 0; i < n; i++ {
			k.SetSym(i, i, k.At(i, i)+sn2+jitter)
		}
		if chol.Factorize(k) {
			factored = true
			break
		}
	}
	if !factored {
		return nil, nil, fmt.Errorf("gp: covariance is not positive definite (noise=%g)", math.Exp(r.logNoise))
	}

	yhat := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		yhat.SetVec(i, r.data.Y[i]-r.mean)
	}
	alpha := mat.NewVecDense(n, nil)
	if err := chol.SolveVecTo(alpha, yhat); err != nil {
		return nil, nil, fmt.Errorf("gp: solve failed: %w", err)
	}
	return &chol, alpha, nil
}

// NegLogLik evaluates the exact negative log marginal likelihood
//
//	L = 1/2 (y-m)' K^-1 (y-m) + 1/2 log|K| + n/2 log 2pi
//
// with K the kernel Gram matrix plus noise variance on the diagonal. When
// grad is non-nil it must have length NumParams and receives dL/dtheta,
// computed as 1/2 tr((K^-1 - alpha alpha') dK/dtheta).
func (r *Regressor) NegLogLik(grad []float64) (float64, error) {
	n := r.data.Len()
	chol, alpha, err := r.factor()
	if err != nil {
		return 0, err
	}

	var fit float64
	for i := 0; i < n; i++ {
		fit += (r.data.Y[i] - r.mean) * alpha.AtVec(i)
	}
	loss := 0.5*fit + 0.5*chol.LogDet() + 0.5*float64(n)*logTwoPi

	if grad == nil {
		return loss, nil
	}
	if len(grad) != r.NumParams() {
		return 0, fmt.Errorf("gp: gradient has length %d, want %d", len(grad), r.NumParams())
	}

	kinv := mat.NewSymDense(n, nil)
	if err := chol.InverseTo(kinv); err != nil {
		return 0, fmt.Errorf("gp: inverse failed: %w", err)
	}

	nk := r.kern.NumParams()
	for i := range grad {
		grad[i] = 0
	}
	kgrad := make([]float64, nk)
	sn2 := math.Exp(2 * r.logNoise)
	var traceW float64
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			w := kinv.At(i, j) - alpha.AtVec(i)*alpha.AtVec(j)
			if i == j {
				traceW += w
			}
			factor := 1.0
			if i != j {
				factor = 2.0
			}
			r.kern.EvalGrad(r.data.X[i], r.data.X[j], kgrad)
			for p := 0; p < nk; p++ {
				grad[p] += 0.5 * factor * w * kgrad[p]
			}
		}
	}
	// dK/dlogNoise = 2 sn2 I, dL/dmean = -sum(alpha).
	grad[nk] = sn2 * traceW
	var alphaSum float64
	for i := 0; i < n; i++ {
		alphaSum += alpha.AtVec(i)
	}
	grad[nk+1] = -alphaSum

	return loss, nil
}

// Predict returns the posterior mean and variance at xs. Variances are
// clamped at zero against round-off and include the noise variance.
func (r *Regressor) Predict(xs []float64) ([]float64, []float64, error) {
	n := r.data.Len()
	chol, alpha, err := r.factor()
	if err != nil {
		return nil, nil, err
	}
	sn2 := math.Exp(2 * r.logNoise)

	mean := make([]float64, len(xs))
	variance := make([]float64, len(xs))
	kstar := mat.NewVecDense(n, nil)
	tmp := mat.NewVecDense(n, nil)
	for s, x := range xs {
		for i := 0; i < n; i++ {
			kstar.SetVec(i, r.kern.Eval(x, r.data.X[i]))
		}
		mean[s] = r.mean + mat.Dot(kstar, alpha)

		if err := chol.SolveVecTo(tmp, kstar); err != nil {
			return nil, nil, fmt.Errorf("gp: predictive solve failed: %w", err)
		}
		v := r.kern.Eval(x, x) + sn2 - mat.Dot(kstar, tmp)
		if v < 0 {
			v = 0
		}
		variance[s] = v
	}
	return mean, variance, nil
}
