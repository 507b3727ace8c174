package kernel

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

const twoPi = 2 * math.Pi

// SpectralMixture is a stationary kernel built from Q weighted components,
// each the product of an exponential decay and a cosine:
//
//	k(tau) = sum_q w_q * exp(-2 pi^2 tau^2 sigma_q^2) * cos(2 pi tau mu_q)
//
// where tau = x - y, w_q is the component weight, sigma_q its bandwidth and
// mu_q its frequency. All three are kept in log space; the parameter vector
// is [logW_0, logSigma_0, logMu_0, logW_1, ...].
type SpectralMixture struct {
	logW     []float64
	logSigma []float64
	logMu    []float64
}

// NewSpectralMixture returns a Q-component mixture with unit weights,
// bandwidths and frequencies. Use InitSpectralMixture to seed a fit.
func NewSpectralMixture(q int) *SpectralMixture {
	if q <= 0 {
		q = 1
	}
	return &SpectralMixture{
		logW:     make([]float64, q),
		logSigma: make([]float64, q),
		logMu:    make([]float64, q),
	}
}

// InitSpectralMixture draws a randomized starting point from data
// statistics: weights split the output variance evenly, frequencies are
// uniform up to the Nyquist rate of the inputs and bandwidths scale with
// the inverse input span.
func InitSpectralMixture(q int, span, nyquist, yvar float64, rng *rand.Rand) *SpectralMixture {
	k := NewSpectralMixture(q)
	if span <= 0 {
		span = 1
	}
	if nyquist <= 0 {
		nyquist = 1
	}
	if yvar <= 0 {
		yvar = 1
	}
	for i := range k.logW {
		k.logW[i] = math.Log(yvar / float64(len(k.logW)))
		k.logSigma[i] = math.Log((0.1 + rng.Float64()) / span)
		k.logMu[i] = math.Log((0.01 + 0.99*rng.Float64()) * nyquist)
	}
	return k
}

func (k *SpectralMixture) Name() string { return "spectral-mixture" }

// Components returns the number of mixture components.
func (k *SpectralMixture) Components() int { return len(k.logW) }

func (k *SpectralMixture) NumParams() int { return 3 * len(k.logW) }

func (k *SpectralMixture) Params() []float64 {
	out := make([]float64, 0, k.NumParams())
	for q := range k.logW {
		out = append(out, k.logW[q], k.logSigma[q], k.logMu[q])
	}
	return out
}

func (k *SpectralMixture) SetParams(p []float64) {
	for q := range k.logW {
		k.logW[q] = p[3*q]
		k.logSigma[q] = p[3*q+1]
		k.logMu[q] = p[3*q+2]
	}
}

func (k *SpectralMixture) Eval(x, y float64) float64 {
	tau := x - y
	t2 := tau * tau
	var sum float64
	for q := range k.logW {
		w := math.Exp(k.logW[q])
		sigma := math.Exp(k.logSigma[q])
		mu := math.Exp(k.logMu[q])
		sum += w * math.Exp(-2*math.Pi*math.Pi*t2*sigma*sigma) * math.Cos(twoPi*tau*mu)
	}
	return sum
}

func (k *SpectralMixture) EvalGrad(x, y float64, grad []float64) float64 {
	tau := x - y
	t2 := tau * tau
	var sum float64
	for q := range k.logW {
		w := math.Exp(k.logW[q])
		sigma := math.Exp(k.logSigma[q])
		mu := math.Exp(k.logMu[q])
		decay := math.Exp(-2 * math.Pi * math.Pi * t2 * sigma * sigma)
		phase := twoPi * tau * mu
		term := w * decay * math.Cos(phase)
		sum += term

		grad[3*q] = term
		grad[3*q+1] = term * (-4 * math.Pi * math.Pi * t2 * sigma * sigma)
		grad[3*q+2] = -w * decay * math.Sin(phase) * phase
	}
	return sum
}

// String summarizes the fitted components in natural units.
func (k *SpectralMixture) String() string {
	var b strings.Builder
	for q := range k.logW {
		if q > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "q=%d w=%.4f sigma=%.4f mu=%.4f",
			q, math.Exp(k.logW[q]), math.Exp(k.logSigma[q]), math.Exp(k.logMu[q]))
	}
	return b.String()
}
