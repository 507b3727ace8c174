package kernel

import "math"

// RBF is the squared-exponential kernel
//
//	k(tau) = v * exp(-tau^2 / (2 l^2))
//
// with variance v and length scale l stored in log space as
// [logVar, logLen].
type RBF struct {
	logVar float64
	logLen float64
}

// NewRBF constructs an RBF kernel from natural-unit hyperparameters.
func NewRBF(variance, length float64) *RBF {
	if variance <= 0 {
		variance = 1
	}
	if length <= 0 {
		length = 1
	}
	return &RBF{logVar: math.Log(variance), logLen: math.Log(length)}
}

func (k *RBF) Name() string { return "rbf" }

func (k *RBF) NumParams() int { return 2 }

func (k *RBF) Params() []float64 { return []float64{k.logVar, k.logLen} }

func (k *RBF) SetParams(p []float64) {
	k.logVar = p[0]
	k.logLen = p[1]
}

func (k *RBF) Eval(x, y float64) float64 {
	tau := x - y
	l := math.Exp(k.logLen)
	return math.Exp(k.logVar) * math.Exp(-tau*tau/(2*l*l))
}

func (k *RBF) EvalGrad(x, y float64, grad []float64) float64 {
	tau := x - y
	l := math.Exp(k.logLen)
	v := math.Exp(k.logVar) * math.Exp(-tau*tau/(2*l*l))
	grad[0] = v
	grad[1] = v * tau * tau / (l * l)
	return v
}
