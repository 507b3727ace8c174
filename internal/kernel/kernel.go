package kernel

import "gonum.org/v1/gonum/mat"

// Kernel is a covariance function over one-dimensional inputs. All
// hyperparameters are exposed as a flat vector in log space so callers can
// run unconstrained gradient optimization over them.
type Kernel interface {
	Name() string
	NumParams() int

	// Params returns a copy of the hyperparameter vector.
	Params() []float64

	// SetParams replaces the hyperparameter vector. The slice length must
	// equal NumParams.
	SetParams(p []float64)

	Eval(x, y float64) float64

	// EvalGrad computes the covariance and writes the partial derivative
	// with respect to each hyperparameter into grad, which must have
	// length NumParams.
	EvalGrad(x, y float64, grad []float64) float64
}

// Gram builds the Gram matrix of k over xs.
func Gram(k Kernel, xs []float64) *mat.SymDense {
	n := len(xs)
	g := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			g.SetSym(i, j, k.Eval(xs[i], xs[j]))
		}
	}
	return g
}

// Sum composes kernels by addition. Its parameter vector is the
// concatenation of the children's vectors in construction order.
type Sum struct {
	kernels []Kernel
}

// NewSum returns the sum of the given kernels.
func NewSum(kernels ...Kernel) *Sum {
	return &Sum{kernels: kernels}
}

func (s *Sum) Name() string { return "sum" }

func (s *Sum) NumParams() int {
	total := 0
	for _, k := range s.kernels {
		total += k.NumParams()
	}
	return total
}

func (s *Sum) Params() []float64 {
	out := make([]float64, 0, s.NumParams())
	for _, k := range s.kernels {
		out = append(out, k.Params()...)
	}
	return out
}

func (s *Sum) SetParams(p []float64) {
	off := 0
	for _, k := range s.kernels {
		n := k.NumParams()
		k.SetParams(p[off : off+n])
		off += n
	}
}

func (s *Sum) Eval(x, y float64) float64 {
	var sum float64
	for _, k := range s.kernels {
		sum += k.Eval(x, y)
	}
	return sum
}

func (s *Sum) EvalGrad(x, y float64, grad []float64) float64 {
	var sum float64
	off := 0
	for _, k := range s.kernels {
		n := k.NumParams()
		sum += k.EvalGrad(x, y, grad[off:off+n])
		off += n
	}
	return sum
}
