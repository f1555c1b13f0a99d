// package kernel implements the Gaussian (RBF) kernel used by the decision function

package kernel

import (
	"math"

	"github.com/reggo/rbfsvm/common"
)

func init() {
	common.Register("gaussian", Gaussian{})
}

// SqDist computes the squared euclidean distance between x and y,
// accumulated in index order. Assumes lengths are equal
func SqDist(x, y []float64) float64 {
	var dsqr float64
	for i, xi := range x {
		d := xi - y[i]
		dsqr += d * d
	}
	return dsqr
}

// RBF returns exp(-gamma * ||x0 - x1||^2). The result lies in (0, 1] for a
// positive gamma and is exactly 1 when x0 and x1 are equal. gamma is not
// checked; a non-positive bandwidth gives values >= 1.
func RBF(x0, x1 []float64, gamma float64) (float64, error) {
	if len(x0) != len(x1) {
		return 0, common.DimensionMismatch{Want: len(x0), Got: len(x1)}
	}
	return Gaussian{Gamma: gamma}.KernelSqDist(SqDist(x0, x1)), nil
}

// A DistKerneler is a type that compute the kernel based on the squared
// distance between two points
type DistKerneler interface {
	KernelSqDist(dsqr float64) float64
}

// Gaussian is the isotropic radial basis function kernel
// k(x,x') = exp(-Gamma ||x - x'||^2)
type Gaussian struct {
	Gamma float64 `json:"gamma"` // Bandwidth, the inverse squared length scale
}

func (g Gaussian) KernelSqDist(dsqr float64) float64 {
	return math.Exp(-g.Gamma * dsqr)
}
