package common

import (
	"errors"
	"fmt"
)

// DimensionMismatch is returned when two points that are compared or
// combined have different lengths.
type DimensionMismatch struct {
	Want int
	Got  int
}

func (d DimensionMismatch) Error() string {
	return fmt.Sprintf("rbfsvm: dimension mismatch. want: %v, got: %v", d.Want, d.Got)
}

// LengthMismatch is returned when the coefficient vector and the support
// vectors do not pair up index for index.
type LengthMismatch struct {
	Coefficients   int
	SupportVectors int
}

func (l LengthMismatch) Error() string {
	return fmt.Sprintf("rbfsvm: length mismatch. coefficients: %v, support vectors: %v", l.Coefficients, l.SupportVectors)
}

// InvalidParameter is returned when a model parameter makes the evaluation
// undefined, such as a zero normalization divisor.
type InvalidParameter struct {
	Name  string
	Value float64
}

func (i InvalidParameter) Error() string {
	return fmt.Sprintf("rbfsvm: invalid parameter %s = %v", i.Name, i.Value)
}

var NoData error = errors.New("rbfsvm: nil data")

// VerifyPoints checks that every point has length dim. The returned
// DimensionMismatch carries the first offending length.
func VerifyPoints(points [][]float64, dim int) error {
	for _, p := range points {
		if len(p) != dim {
			return DimensionMismatch{Want: dim, Got: len(p)}
		}
	}
	return nil
}

// Dimension returns the common length of the points. It returns NoData
// for an empty set and a DimensionMismatch if the lengths differ.
func Dimension(points [][]float64) (int, error) {
	if len(points) == 0 {
		return 0, NoData
	}
	dim := len(points[0])
	if err := VerifyPoints(points, dim); err != nil {
		return 0, err
	}
	return dim, nil
}
