// Package dataset builds the synthetic 1-D regression data and the query
// grids used to exercise a kernel model.
package dataset

import (
	"errors"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	ErrNegativeSize = errors.New("dataset: negative number of samples")
	ErrShortGrid    = errors.New("dataset: grid needs at least two points")
)

// Label is the noiseless target sin(6πx).
func Label(x float64) float64 {
	return math.Sin(2.0 * 3.0 * math.Pi * x)
}

// NewSource returns a random source seeded only from seed, so that two
// sources with the same seed produce the same stream.
func NewSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

// Generate draws n inputs uniformly from [0, 1) using src and labels them
// with Label. Each input is a one dimensional point. src is consumed and
// must not be shared between goroutines.
func Generate(n int, src rand.Source) (x [][]float64, y []float64, err error) {
	if n < 0 {
		return nil, nil, ErrNegativeSize
	}
	u := distuv.Uniform{Min: 0, Max: 1, Src: src}
	x = make([][]float64, n)
	y = make([]float64, n)
	for i := range x {
		xi := u.Rand()
		x[i] = []float64{xi}
		y[i] = Label(xi)
	}
	return x, y, nil
}

// Linspace returns n evenly spaced values from a to b inclusive.
func Linspace(a, b float64, n int) ([]float64, error) {
	if n < 2 {
		return nil, ErrShortGrid
	}
	return floats.Span(make([]float64, n), a, b), nil
}

// Grid returns Linspace(a, b, n) as an n x 1 matrix of query points.
func Grid(a, b float64, n int) (*mat.Dense, error) {
	pts, err := Linspace(a, b, n)
	if err != nil {
		return nil, err
	}
	return mat.NewDense(n, 1, pts), nil
}

// Matrix copies equal length points into the rows of a dense matrix. It
// returns nil for an empty set and panics on ragged input.
func Matrix(points [][]float64) *mat.Dense {
	if len(points) == 0 {
		return nil
	}
	m := mat.NewDense(len(points), len(points[0]), nil)
	for i, p := range points {
		m.SetRow(i, p)
	}
	return m
}
