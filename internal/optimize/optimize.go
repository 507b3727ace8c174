// Package optimize provides the gradient-step rules used to fit
// hyperparameters.
package optimize

import "math"

// Optimizer applies one in-place update to params given the gradient of
// the loss at params.
type Optimizer interface {
	Step(params, grad []float64)
}

// AdamConfig holds the Adam knobs. Zero values fall back to the usual
// defaults.
type AdamConfig struct {
	LearnRate float64 // default 0.05
	Beta1     float64 // default 0.9
	Beta2     float64 // default 0.999
	Epsilon   float64 // default 1e-8
}

// Adam implements the bias-corrected adaptive moment estimation update.
type Adam struct {
	cfg AdamConfig
	m   []float64
	v   []float64
	t   int
}

// NewAdam constructs an Adam optimizer.
func NewAdam(cfg AdamConfig) *Adam {
	if cfg.LearnRate <= 0 {
		cfg.LearnRate = 0.05
	}
	if cfg.Beta1 <= 0 {
		cfg.Beta1 = 0.9
	}
	if cfg.Beta2 <= 0 {
		cfg.Beta2 = 0.999
	}
	if cfg.Epsilon <= 0 {
		cfg.Epsilon = 1e-8
	}
	return &Adam{cfg: cfg}
}

func (a *Adam) Step(params, grad []float64) {
	if a.m == nil {
		a.m = make([]float64, len(params))
		a.v = make([]float64, len(params))
	}
	a.t++
	c1 := 1 - math.Pow(a.cfg.Beta1, float64(a.t))
	c2 := 1 - math.Pow(a.cfg.Beta2, float64(a.t))
	for i := range params {
		a.m[i] = a.cfg.Beta1*a.m[i] + (1-a.cfg.Beta1)*grad[i]
		a.v[i] = a.cfg.Beta2*a.v[i] + (1-a.cfg.Beta2)*grad[i]*grad[i]
		mhat := a.m[i] / c1
		vhat := a.v[i] / c2
		params[i] -= a.cfg.LearnRate * mhat / (math.Sqrt(vhat) + a.cfg.Epsilon)
	}
}

// MomentumConfig holds the momentum SGD knobs.
type MomentumConfig struct {
	LearnRate float64 // default 0.01
	Momentum  float64 // default 0.9
}

// Momentum implements gradient descent with classical momentum.
type Momentum struct {
	cfg MomentumConfig
	vel []float64
}

// NewMomentum constructs a momentum optimizer.
func NewMomentum(cfg MomentumConfig) *Momentum {
	if cfg.LearnRate <= 0 {
		cfg.LearnRate = 0.01
	}
	if cfg.Momentum <= 0 {
		cfg.Momentum = 0.9
	}
	return &Momentum{cfg: cfg}
}

func (m *Momentum) Step(params, grad []float64) {
	if m.vel == nil {
		m.vel = make([]float64, len(params))
	}
	for i := range params {
		m.vel[i] = m.cfg.Momentum*m.vel[i] - m.cfg.LearnRate*grad[i]
		params[i] += m.vel[i]
	}
}
