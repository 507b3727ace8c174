package dataset

import (
	"math"
	"math/rand"
)

// Synthetic generates n observations of a two-tone signal with Gaussian
// noise on an evenly spaced grid over [0, 10]:
//
//	y = sin(2 pi 0.4 x) + 0.6 sin(2 pi 1.1 x) + noise * N(0, 1)
func Synthetic(n int, noise float64, seed int64) Dataset {
	if n <= 0 {
		n = 1
	}
	rng := rand.New(rand.NewSource(seed))
	x := make([]float64, n)
	y := make([]float64, n)
	step := 10.0 / float64(n)
	for i := range x {
		x[i] = float64(i) * step
		y[i] = math.Sin(twoPi*0.4*x[i]) + 0.6*math.Sin(twoPi*1.1*x[i]) + noise*rng.NormFloat64()
	}
	return Dataset{X: x, Y: y}
}

const twoPi = 2 * math.Pi
