// Package synth generates synthetic test signals for exploring the
// viewer without an acquisition device.
package synth

import (
	"math"
	"math/rand"
)

// DefaultPoints is the signal length used when none is configured.
const DefaultPoints = 10_000_000

// Generate returns a test signal of n points spanning 100 seconds:
// y = 3*cos(x) + 2*sin(10x) plus unit gaussian noise. For n < 2 the
// default length is used.
func Generate(n int) (x, y []float64) {
	if n < 2 {
		n = DefaultPoints
	}

	step := 100.0 / float64(n)
	x = make([]float64, n)
	y = make([]float64, n)
	for i := range x {
		t := float64(i) * step
		x[i] = t
		y[i] = 3*math.Cos(t) + 2*math.Sin(10*t) + rand.NormFloat64()
	}

	return x, y
}
